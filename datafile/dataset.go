package datafile

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-datafile/internal/container"
	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

// writeDataset is the write manager every typed save funnels into. Within
// the caller's session it resolves the target, materializes the parent group
// chain, enforces the collision policy at the leaf, writes the dataset, and
// attaches its provenance record. The dataset and its attribute are
// committed together: a failure after creation rolls both back.
func (d *Datafile) writeDataset(root *container.Node, v dtype.Value, name, groupKey string, fields Fields, overwrite bool) error {
	parentPath, leaf, err := Resolve(d.root, groupKey, name)
	if err != nil {
		return err
	}

	if err := d.ensureGroup(root, parentPath, "", ""); err != nil {
		return err
	}

	// Re-check the parent: ensureGroup succeeding does not prove the node we
	// look up now is a group.
	parent, err := lookup(root, parentPath)
	if err != nil {
		return err
	}
	if !parent.IsGroup() {
		return errors.Wrapf(ErrPathCollision, "%s", parentPath)
	}

	switch parent.ChildKind(leaf) {
	case container.KindGroup:
		// A group is never replaced by a dataset, overwrite or not.
		return errors.Wrapf(ErrNameOccupied, "group exists at %s/%s", parentPath, leaf)

	case container.KindDataset:
		if !overwrite {
			return errors.Wrapf(ErrNameOccupied, "dataset exists at %s/%s", parentPath, leaf)
		}
		if err := parent.DeleteChild(leaf); err != nil {
			return errors.Wrapf(err, "replacing dataset %q", leaf)
		}
	}

	raw, err := dtype.Encode(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", v.Kind())
	}
	ds, err := parent.CreateDataset(leaf, raw)
	if err != nil {
		return errors.Wrapf(err, "creating dataset %q in %s", leaf, parentPath)
	}
	return ds.SetAttr(provenanceAttr, fields.String())
}

// save runs one typed write in its own session and applies the
// report-and-return-false error contract.
func (d *Datafile) save(op string, v dtype.Value, name, groupKey string, fields Fields, overwrite bool) bool {
	err := d.withSession(func(root *container.Node) error {
		return d.writeDataset(root, v, name, groupKey, fields, overwrite)
	})
	if err != nil {
		return d.fail(op, err, "name", name, "group", groupKey)
	}
	return true
}

// SaveArray stores a shaped float array under <root>/<groupKey>/<name>.
// With no shape given the array is stored one-dimensional.
func (d *Datafile) SaveArray(name, groupKey string, data []float64, shape []int, note string, opts ...SaveOption) bool {
	o := applySaveOptions(opts)
	fields := Fields{
		{"timestamp", Timestamp(d.now())},
		{"note", note},
	}
	return d.save("save_array", dtype.Float64Array(data, shape...), name, groupKey, fields, o.overwrite)
}

// SaveVariable stores a scalar. The provenance typestr defaults to "double";
// override with WithTypeTag.
func (d *Datafile) SaveVariable(name, groupKey string, value float64, note string, opts ...SaveOption) bool {
	o := applySaveOptions(opts)
	fields := Fields{
		{"typestr", o.typeTag},
		{"timestamp", Timestamp(d.now())},
		{"note", note},
	}
	return d.save("save_variable", dtype.Float64(value), name, groupKey, fields, o.overwrite)
}

// SaveString stores text as a single UTF-8 string entry. The declared
// encoding (WithEncoding) is recorded in the provenance record; anything
// other than UTF-8 is rejected rather than transcoded.
func (d *Datafile) SaveString(name, groupKey, text, note string, opts ...SaveOption) bool {
	o := applySaveOptions(opts)
	if !utf8Encoding(o.encoding) {
		return d.fail("save_string",
			errors.Errorf("unsupported encoding %q, text is stored as UTF-8", o.encoding),
			"name", name, "group", groupKey)
	}
	fields := Fields{
		{"type", "str"},
		{"encoding", o.encoding},
		{"timestamp", Timestamp(d.now())},
		{"note", note},
	}
	return d.save("save_string", dtype.String(text), name, groupKey, fields, o.overwrite)
}

func utf8Encoding(name string) bool {
	switch name {
	case "utf-8", "UTF-8", "utf8", "UTF8":
		return true
	}
	return false
}
