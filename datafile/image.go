package datafile

import (
	"fmt"
	"image"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

// Image is a raw pixel buffer with its actual shape, row-major. The usual
// shape for an RGB image is height x width x 3.
type Image struct {
	Pixels []uint8
	Shape  []int
}

// FigureRenderer produces a fixed-shape pixel buffer from a plotting figure.
// Rendering backends are external collaborators; the writer only consumes
// the buffer.
type FigureRenderer interface {
	RenderRGB(dpi int) (Image, error)
}

// SaveImage stores an image buffer under <root>/<groupKey>/<name>. The
// declared dimension and color-channel tag are recorded in the provenance
// record. A mismatch between the declared dimension and the buffer's actual
// shape is reported as a warning, not a failure: the dataset is written with
// its actual shape.
func (d *Datafile) SaveImage(name, groupKey string, img Image, dimension []int, colorChannels, note string, opts ...SaveOption) bool {
	o := applySaveOptions(opts)

	if !equalShape(img.Shape, dimension) {
		d.reporter.Report("image dimension mismatch",
			"name", name, "group", groupKey,
			"declared", fmt.Sprint(dimension), "actual", fmt.Sprint(img.Shape))
	}

	fields := Fields{
		{"type", "image"},
		{"dimensions", fmt.Sprint(dimension)},
		{"color_channels", colorChannels},
		{"timestamp", Timestamp(d.now())},
		{"note", note},
	}
	return d.save("save_image", dtype.Uint8Array(img.Pixels, img.Shape...), name, groupKey, fields, o.overwrite)
}

// SaveFigure renders fig at the given dpi and stores the result via
// SaveImage, declaring the rendered shape as the dimension.
func (d *Datafile) SaveFigure(fig FigureRenderer, name, groupKey string, dpi int, note string, opts ...SaveOption) bool {
	img, err := fig.RenderRGB(dpi)
	if err != nil {
		return d.fail("save_figure", errors.Wrap(err, "rendering figure"), "name", name, "group", groupKey)
	}
	return d.SaveImage(name, groupKey, img, img.Shape, "rgb", note, opts...)
}

// RGBPixels flattens m into a height x width x 3 uint8 buffer, dropping
// alpha.
func RGBPixels(m image.Image) Image {
	bounds := m.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]uint8, 0, h*w*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := m.At(x, y).RGBA()
			pixels = append(pixels, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return Image{Pixels: pixels, Shape: []int{h, w, 3}}
}

func equalShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
