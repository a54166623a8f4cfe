package datafile

import (
	"bytes"
	"path"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/ipc"
	"github.com/pkg/errors"

	"github.com/robert-malhotra/go-datafile/internal/container"
	"github.com/robert-malhotra/go-datafile/internal/dtype"
)

// frameDataName is the dataset holding the serialized table inside a
// DataFrame-typed group.
const frameDataName = "data"

// SaveFrame stores a tabular frame under <root>/<groupKey>/<name>: the name
// becomes a DataFrame-typed group carrying the provenance stamp, and the
// record batch is serialized as an Arrow IPC stream into a single "data"
// dataset beneath it.
func (d *Datafile) SaveFrame(name, groupKey string, rec arrow.Record, note string, opts ...SaveOption) bool {
	o := applySaveOptions(opts)

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	if err := w.Write(rec); err != nil {
		return d.fail("save_dataframe", errors.Wrap(err, "encoding arrow record"), "name", name, "group", groupKey)
	}
	if err := w.Close(); err != nil {
		return d.fail("save_dataframe", errors.Wrap(err, "closing arrow stream"), "name", name, "group", groupKey)
	}

	framePath, err := AbsPath(d.root, groupKey, name)
	if err != nil {
		return d.fail("save_dataframe", err, "name", name, "group", groupKey)
	}
	ts := Timestamp(d.now())
	fields := Fields{
		{"type", "dataframe"},
		{"format", "arrow-ipc"},
		{"timestamp", ts},
		{"note", note},
	}

	err = d.withSession(func(root *container.Node) error {
		if err := d.ensureGroup(root, framePath, note, "DataFrame"); err != nil {
			return err
		}
		return d.writeDataset(root, dtype.Bytes(buf.Bytes()), frameDataName, path.Join(groupKey, name), fields, o.overwrite)
	})
	if err != nil {
		return d.fail("save_dataframe", err, "path", framePath)
	}
	return true
}

// ReadFrame decodes the frame stored at key (the group created by
// SaveFrame). The caller owns the returned record and must Release it.
func (d *Datafile) ReadFrame(key string) (arrow.Record, error) {
	value, _, err := d.ReadDataset(path.Join(key, frameDataName))
	if err != nil {
		return nil, err
	}
	raw, ok := value.AsBytes()
	if !ok {
		return nil, errors.Wrapf(ErrNotDataset, "%s does not hold a serialized frame", key)
	}

	r, err := ipc.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "opening arrow stream")
	}
	defer r.Release()

	if !r.Next() {
		if err := r.Err(); err != nil {
			return nil, errors.Wrap(err, "reading arrow record")
		}
		return nil, errors.Wrapf(ErrNotFound, "empty frame at %s", key)
	}
	rec := r.Record()
	rec.Retain()
	return rec, nil
}
