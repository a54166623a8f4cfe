package datafile

import (
	"path"
	"sort"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-datafile/internal/container"
	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

// Node is one element of an in-memory hierarchy to persist: a Scalar, Text,
// Array leaf, or a nested Subtree. The variant set is sealed.
type Node interface {
	isNode()
}

// Scalar is a float leaf, saved like SaveVariable.
type Scalar float64

// Text is a string leaf, saved like SaveString.
type Text string

// Array is a shaped float-array leaf, saved like SaveArray.
type Array struct {
	Data  []float64
	Shape []int
}

// Subtree is a nested mapping, materialized as a group with one child per
// entry.
type Subtree map[string]Node

func (Scalar) isNode()  {}
func (Text) isNode()    {}
func (Array) isNode()   {}
func (Subtree) isNode() {}

// SaveHierarchy persists tree beneath <root>/<groupKey> in one session: a
// group per subtree and a typed dataset per leaf, each stamped with its own
// provenance record. Children are written in sorted name order. The first
// failing entry aborts the walk and rolls the whole call back.
func (d *Datafile) SaveHierarchy(groupKey string, tree Subtree, note string, opts ...SaveOption) bool {
	o := applySaveOptions(opts)

	base, err := AbsPath(d.root, groupKey)
	if err != nil {
		return d.fail("save_hierarchy", err, "group", groupKey)
	}
	err = d.withSession(func(root *container.Node) error {
		if err := d.ensureGroup(root, base, note, "hierarchy"); err != nil {
			return err
		}
		return d.saveSubtree(root, groupKey, tree, note, o)
	})
	if err != nil {
		return d.fail("save_hierarchy", err, "path", base)
	}
	return true
}

func (d *Datafile) saveSubtree(root *container.Node, groupKey string, tree Subtree, note string, o *saveOptions) error {
	names := make([]string, 0, len(tree))
	for name := range tree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch v := tree[name].(type) {
		case Subtree:
			childKey := path.Join(groupKey, name)
			full, err := AbsPath(d.root, childKey)
			if err != nil {
				return err
			}
			if err := d.ensureGroup(root, full, note, "hierarchy"); err != nil {
				return err
			}
			if err := d.saveSubtree(root, childKey, v, note, o); err != nil {
				return err
			}

		case Scalar:
			fields := Fields{
				{"typestr", o.typeTag},
				{"timestamp", Timestamp(d.now())},
				{"note", note},
			}
			if err := d.writeDataset(root, dtype.Float64(float64(v)), name, groupKey, fields, o.overwrite); err != nil {
				return err
			}

		case Text:
			fields := Fields{
				{"type", "str"},
				{"encoding", o.encoding},
				{"timestamp", Timestamp(d.now())},
				{"note", note},
			}
			if err := d.writeDataset(root, dtype.String(string(v)), name, groupKey, fields, o.overwrite); err != nil {
				return err
			}

		case Array:
			fields := Fields{
				{"timestamp", Timestamp(d.now())},
				{"note", note},
			}
			if err := d.writeDataset(root, dtype.Float64Array(v.Data, v.Shape...), name, groupKey, fields, o.overwrite); err != nil {
				return err
			}

		default:
			return errors.Errorf("nil hierarchy node at %q", path.Join(groupKey, name))
		}
	}
	return nil
}
