package datafile

import (
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-datafile/internal/container"
)

// CreateGroup ensures the group chain <root>/<parentKey>/<name> exists,
// creating missing segments as groups stamped with a fresh provenance
// record. Calling it again with the same arguments succeeds and creates
// nothing. Returns false if any segment is occupied by a dataset.
func (d *Datafile) CreateGroup(name, parentKey, note, groupType string) bool {
	full, err := AbsPath(d.root, parentKey, name)
	if err != nil {
		return d.fail("create_group", err, "name", name, "parent", parentKey)
	}
	err = d.withSession(func(root *container.Node) error {
		return d.ensureGroup(root, full, note, groupType)
	})
	if err != nil {
		return d.fail("create_group", err, "path", full)
	}
	return true
}

// ensureGroup walks p from the root downward. Missing segments are created
// as groups and stamped; existing groups are reused; a dataset occupying any
// segment aborts the walk with ErrPathCollision. Requesting "/" is a no-op.
func (d *Datafile) ensureGroup(root *container.Node, p, note, groupType string) error {
	cur := root
	for _, seg := range SplitPath(p) {
		switch cur.ChildKind(seg) {
		case container.KindGroup:
			cur = cur.Child(seg)

		case container.KindDataset:
			return errors.Wrapf(ErrPathCollision, "segment %q of %s", seg, p)

		default:
			grp, err := cur.CreateGroup(seg)
			if err != nil {
				return errors.Wrapf(err, "creating group %q in %s", seg, p)
			}
			fields := Fields{
				{"timestamp", Timestamp(d.now())},
				{"note", note},
				{"grouptype", groupType},
			}
			if err := grp.SetAttr(provenanceAttr, fields.String()); err != nil {
				return err
			}
			cur = grp
		}
	}
	return nil
}
