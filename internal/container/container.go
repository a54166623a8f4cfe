// Package container implements the persistent hierarchical store backing a
// datafile: a tree of named groups and datasets with per-node string
// attributes, kept as nested bbolt buckets inside a single file.
//
// Every node is a bucket. Node metadata lives under reserved dot-keys
// (".kind", ".data", ".attr:<name>"), so child names starting with '.' are
// rejected. The store holds the bbolt file lock from Open until Close; all
// reads and mutations happen inside one Update or View transaction.
package container

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Reserved keys inside a node bucket.
const (
	kindKey    = ".kind"
	dataKey    = ".data"
	attrPrefix = ".attr:"
)

var rootBucket = []byte("datafile")

// Kind classifies what occupies a name in a group.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindGroup
	KindDataset
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return "absent"
	}
}

// Store is an open container file. A Store must be closed by the caller;
// the underlying file lock is held until then.
type Store struct {
	db   *bolt.DB
	path string
}

// Open opens the container file at path, creating it if absent. A second
// process holding the file lock makes Open fail after the lock timeout.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening container %s", path)
	}

	// Make sure the root group exists so sessions always start from a node.
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(rootBucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(kindKey)) == nil {
			return b.Put([]byte(kindKey), []byte{byte(KindGroup)})
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing container root")
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the container file path.
func (s *Store) Path() string { return s.path }

// Close releases the container file and its lock.
func (s *Store) Close() error { return s.db.Close() }

// Update runs fn inside a single read-write transaction rooted at "/".
// An error from fn rolls the whole transaction back.
func (s *Store) Update(fn func(root *Node) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return fn(&Node{b: tx.Bucket(rootBucket), path: "/"})
	})
}

// View runs fn inside a read-only transaction rooted at "/".
func (s *Store) View(fn func(root *Node) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(&Node{b: tx.Bucket(rootBucket), path: "/"})
	})
}
