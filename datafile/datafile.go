package datafile

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-datafile/internal/container"
	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

const (
	// logGroup is the fixed group (under the root) receiving one log entry
	// per Open.
	logGroup = "pyqlab_log"

	// provenanceAttr is the attribute name carrying the provenance record
	// on every written entity.
	provenanceAttr = "created_by_pyqlab"
)

// Datafile writes to a hierarchical container file. Every public operation
// opens the container, runs inside one transaction, and closes the file
// before returning, so no handle is held across calls. Two sequential calls
// are therefore not atomic as a pair, and the container must not be written
// by another process during a call.
//
// Write-path errors are reported through the configured Reporter and
// surfaced as a boolean failure return rather than an error value.
type Datafile struct {
	path     string
	root     string
	reporter Reporter
	now      func() time.Time
}

// Open opens (creating if absent) the container at path and immediately
// writes one log entry under <root>/pyqlab_log recording the operator and
// note. A container that cannot accept its own log entry is unusable, so
// that failure propagates instead of being converted to a boolean.
func Open(path string, opts ...Option) (*Datafile, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	root, err := AbsPath(cfg.root)
	if err != nil {
		return nil, errors.Wrapf(err, "root group %q", cfg.root)
	}

	d := &Datafile{
		path:     path,
		root:     root,
		reporter: cfg.reporter,
		now:      cfg.now,
	}

	ts := Timestamp(d.now())
	entry := fmt.Sprintf("LogINIT[%s]", ts)
	message := fmt.Sprintf("Initiated by operator: [%s]. Note: [%s]", cfg.operator, cfg.note)
	fields := Fields{
		{"timestamp", ts},
		{"operator", cfg.operator},
		{"note", cfg.note},
	}

	err = d.withSession(func(root *container.Node) error {
		// Log entries are append-only; an existing name is never replaced.
		return d.writeDataset(root, dtype.String(message), entry, logGroup, fields, false)
	})
	if err != nil {
		return nil, errors.Wrap(err, "writing container init log entry")
	}
	return d, nil
}

// Path returns the container file path.
func (d *Datafile) Path() string { return d.path }

// Root returns the root group path keys are resolved against.
func (d *Datafile) Root() string { return d.root }

// withSession opens the container for one read-write transaction and closes
// it on every exit path.
func (d *Datafile) withSession(fn func(root *container.Node) error) error {
	store, err := container.Open(d.path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Update(fn)
}

// withView is withSession for read-only access.
func (d *Datafile) withView(fn func(root *container.Node) error) error {
	store, err := container.Open(d.path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.View(fn)
}

// fail reports err through the reporter and converts it to a boolean
// failure, the contract of every public save method.
func (d *Datafile) fail(op string, err error, args ...any) bool {
	d.reporter.Report(op+" failed", append(args, "error", err)...)
	return false
}

// lookup walks key (resolved against the root group) and returns the node,
// or ErrNotFound.
func lookup(root *container.Node, key string) (*container.Node, error) {
	cur := root
	for _, seg := range SplitPath(key) {
		next := cur.Child(seg)
		if next == nil {
			return nil, errors.Wrapf(ErrNotFound, "%s", key)
		}
		cur = next
	}
	return cur, nil
}

// Exists reports whether a group or dataset exists at key under the root.
func (d *Datafile) Exists(key string) bool {
	found := false
	err := d.withView(func(root *container.Node) error {
		full, err := AbsPath(d.root, key)
		if err != nil {
			return err
		}
		if _, err := lookup(root, full); err == nil {
			found = true
		}
		return nil
	})
	return err == nil && found
}

// IsGroup reports whether key names an existing group.
func (d *Datafile) IsGroup(key string) bool {
	isGroup := false
	err := d.withView(func(root *container.Node) error {
		full, err := AbsPath(d.root, key)
		if err != nil {
			return err
		}
		node, err := lookup(root, full)
		if err != nil {
			return nil
		}
		isGroup = node.IsGroup()
		return nil
	})
	return err == nil && isGroup
}

// ReadDataset returns the value and provenance record of the dataset at key.
func (d *Datafile) ReadDataset(key string) (dtype.Value, string, error) {
	var (
		value      dtype.Value
		provenance string
	)
	err := d.withView(func(root *container.Node) error {
		full, err := AbsPath(d.root, key)
		if err != nil {
			return err
		}
		node, err := lookup(root, full)
		if err != nil {
			return err
		}
		if node.IsGroup() {
			return errors.Wrapf(ErrNotDataset, "%s", full)
		}
		value, err = dtype.Decode(node.Data())
		if err != nil {
			return errors.Wrapf(err, "decoding dataset %s", full)
		}
		provenance, _ = node.Attr(provenanceAttr)
		return nil
	})
	if err != nil {
		return dtype.Value{}, "", err
	}
	return value, provenance, nil
}

// Members returns the sorted child names of the group at key.
func (d *Datafile) Members(key string) ([]string, error) {
	var members []string
	err := d.withView(func(root *container.Node) error {
		full, err := AbsPath(d.root, key)
		if err != nil {
			return err
		}
		node, err := lookup(root, full)
		if err != nil {
			return err
		}
		if !node.IsGroup() {
			return errors.Wrapf(ErrNotGroup, "%s", full)
		}
		members = node.Children()
		return nil
	})
	return members, err
}
