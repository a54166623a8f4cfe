package datafile

import (
	"errors"

	"github.com/robert-malhotra/go-datafile/internal/container"
	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

// EntryInfo describes one node visited during Walk.
type EntryInfo struct {
	// Path is the absolute container path of the node.
	Path string

	// IsGroup distinguishes groups from datasets.
	IsGroup bool

	// Value is the decoded dataset value; the zero Value for groups.
	Value dtype.Value

	// Provenance is the node's provenance record, if present.
	Provenance string
}

// WalkFunc is called for each group and dataset during traversal.
// Return nil to continue, ErrStopWalk to stop early, or another error to
// abort the walk.
type WalkFunc func(info EntryInfo) error

// ErrStopWalk stops a Walk without reporting an error.
var ErrStopWalk = errors.New("walk stopped")

// Walk traverses the whole container depth-first in sorted name order,
// starting at the root group, inside one read-only session.
func (d *Datafile) Walk(fn WalkFunc) error {
	err := d.withView(func(root *container.Node) error {
		start, err := lookup(root, d.root)
		if err != nil {
			return err
		}
		return walkNode(start, fn)
	})
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walkNode(n *container.Node, fn WalkFunc) error {
	info := EntryInfo{
		Path:    n.Path(),
		IsGroup: n.IsGroup(),
	}
	info.Provenance, _ = n.Attr(provenanceAttr)
	if !info.IsGroup {
		v, err := dtype.Decode(n.Data())
		if err != nil {
			return err
		}
		info.Value = v
	}
	if err := fn(info); err != nil {
		return err
	}
	if !info.IsGroup {
		return nil
	}
	for _, name := range n.Children() {
		if err := walkNode(n.Child(name), fn); err != nil {
			return err
		}
	}
	return nil
}
