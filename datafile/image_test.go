package datafile

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayRamp(h, w int) Image {
	pixels := make([]uint8, 0, h*w*3)
	for i := 0; i < h*w; i++ {
		v := uint8(i % 256)
		pixels = append(pixels, v, v, v)
	}
	return Image{Pixels: pixels, Shape: []int{h, w, 3}}
}

func TestSaveImage(t *testing.T) {
	d, rep := newTestFile(t)

	img := grayRamp(4, 5)
	require.True(t, d.SaveImage("img1", "exp1", img, []int{4, 5, 3}, "rgb", "camera A"))
	assert.Empty(t, rep.events)

	value, provenance, err := d.ReadDataset("exp1/img1")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 3}, value.Shape())
	assert.Contains(t, provenance, "type:image")
	assert.Contains(t, provenance, "color_channels:rgb")
	assert.Contains(t, provenance, "note:camera A")
}

func TestSaveImageDimensionMismatchWarnsButWrites(t *testing.T) {
	d, rep := newTestFile(t)

	img := grayRamp(100, 100)
	require.True(t, d.SaveImage("img1", "exp1", img, []int{50, 50, 3}, "rgb", ""))

	assert.True(t, rep.has("image dimension mismatch"))

	value, _, err := d.ReadDataset("exp1/img1")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 100, 3}, value.Shape(), "stored with the buffer's actual shape")
}

func TestRGBPixels(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 3, 2))
	m.Set(0, 0, color.RGBA{R: 255, A: 255})
	m.Set(2, 1, color.RGBA{G: 128, B: 64, A: 255})

	img := RGBPixels(m)
	assert.Equal(t, []int{2, 3, 3}, img.Shape)
	require.Len(t, img.Pixels, 18)

	assert.Equal(t, uint8(255), img.Pixels[0], "top-left red")
	// Last pixel, row-major: (y=1, x=2).
	assert.Equal(t, uint8(128), img.Pixels[16])
	assert.Equal(t, uint8(64), img.Pixels[17])
}

type stubFigure struct {
	img Image
	err error
}

func (s stubFigure) RenderRGB(dpi int) (Image, error) { return s.img, s.err }

func TestSaveFigure(t *testing.T) {
	d, rep := newTestFile(t)

	require.True(t, d.SaveFigure(stubFigure{img: grayRamp(2, 2)}, "fig1", "exp1", 300, "sweep plot"))
	assert.Empty(t, rep.events, "rendered shape matches the declared dimension")

	value, provenance, err := d.ReadDataset("exp1/fig1")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 3}, value.Shape())
	assert.Contains(t, provenance, "note:sweep plot")
}

func TestSaveFigureRenderFailure(t *testing.T) {
	d, rep := newTestFile(t)

	require.False(t, d.SaveFigure(stubFigure{err: assert.AnError}, "fig1", "exp1", 300, ""))
	require.ErrorIs(t, rep.lastErr(), assert.AnError)
	assert.False(t, d.Exists("exp1/fig1"))
}
