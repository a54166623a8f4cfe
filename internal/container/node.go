package container

import (
	"path"
	"strings"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Node errors.
var (
	ErrReservedName = errors.New("node name is empty or reserved")
	ErrNodeExists   = errors.New("node already exists")
	ErrNoSuchChild  = errors.New("no such child")
)

// Node is a handle to one group or dataset, valid only for the duration of
// the transaction that produced it.
type Node struct {
	b    *bolt.Bucket
	path string
}

// Path returns the node's absolute path inside the container.
func (n *Node) Path() string { return n.path }

// Kind returns whether this node is a group or a dataset.
func (n *Node) Kind() Kind {
	raw := n.b.Get([]byte(kindKey))
	if len(raw) != 1 {
		return KindAbsent
	}
	return Kind(raw[0])
}

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool { return n.Kind() == KindGroup }

// ChildKind reports what occupies name in this group.
func (n *Node) ChildKind(name string) Kind {
	child := n.b.Bucket([]byte(name))
	if child == nil {
		return KindAbsent
	}
	raw := child.Get([]byte(kindKey))
	if len(raw) != 1 {
		return KindAbsent
	}
	return Kind(raw[0])
}

// Child returns the named child node, or nil if it does not exist.
func (n *Node) Child(name string) *Node {
	child := n.b.Bucket([]byte(name))
	if child == nil {
		return nil
	}
	return &Node{b: child, path: childPath(n.path, name)}
}

// CreateGroup creates an empty child group. The name must be unoccupied.
func (n *Node) CreateGroup(name string) (*Node, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	child, err := n.b.CreateBucket([]byte(name))
	if err != nil {
		if errors.Is(err, bolt.ErrBucketExists) {
			return nil, errors.Wrapf(ErrNodeExists, "%s in %s", name, n.path)
		}
		return nil, errors.Wrapf(err, "creating group %q in %s", name, n.path)
	}
	if err := child.Put([]byte(kindKey), []byte{byte(KindGroup)}); err != nil {
		return nil, errors.Wrapf(err, "marking group %q", name)
	}
	return &Node{b: child, path: childPath(n.path, name)}, nil
}

// CreateDataset creates a child dataset holding data. The name must be
// unoccupied; replacing a dataset is DeleteChild followed by CreateDataset.
func (n *Node) CreateDataset(name string, data []byte) (*Node, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	child, err := n.b.CreateBucket([]byte(name))
	if err != nil {
		if errors.Is(err, bolt.ErrBucketExists) {
			return nil, errors.Wrapf(ErrNodeExists, "%s in %s", name, n.path)
		}
		return nil, errors.Wrapf(err, "creating dataset %q in %s", name, n.path)
	}
	if err := child.Put([]byte(kindKey), []byte{byte(KindDataset)}); err != nil {
		return nil, errors.Wrapf(err, "marking dataset %q", name)
	}
	if err := child.Put([]byte(dataKey), data); err != nil {
		return nil, errors.Wrapf(err, "storing dataset %q", name)
	}
	return &Node{b: child, path: childPath(n.path, name)}, nil
}

// DeleteChild removes the named child and everything beneath it.
func (n *Node) DeleteChild(name string) error {
	err := n.b.DeleteBucket([]byte(name))
	if errors.Is(err, bolt.ErrBucketNotFound) {
		return errors.Wrapf(ErrNoSuchChild, "%s in %s", name, n.path)
	}
	return errors.Wrapf(err, "deleting %q in %s", name, n.path)
}

// SetAttr attaches a named string attribute to the node, replacing any
// previous value.
func (n *Node) SetAttr(name, value string) error {
	err := n.b.Put([]byte(attrPrefix+name), []byte(value))
	return errors.Wrapf(err, "setting attribute %q on %s", name, n.path)
}

// Attr returns the named attribute value.
func (n *Node) Attr(name string) (string, bool) {
	raw := n.b.Get([]byte(attrPrefix + name))
	if raw == nil {
		return "", false
	}
	return string(raw), true
}

// Attrs returns the node's attribute names in sorted order.
func (n *Node) Attrs() []string {
	var names []string
	c := n.b.Cursor()
	prefix := []byte(attrPrefix)
	for k, _ := c.Seek(prefix); k != nil && strings.HasPrefix(string(k), attrPrefix); k, _ = c.Next() {
		names = append(names, strings.TrimPrefix(string(k), attrPrefix))
	}
	return names
}

// Data returns a copy of a dataset's payload, or nil for groups.
func (n *Node) Data() []byte {
	raw := n.b.Get([]byte(dataKey))
	if raw == nil {
		return nil
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// Children returns the node's child names in sorted order (bbolt keeps
// bucket keys ordered).
func (n *Node) Children() []string {
	var names []string
	c := n.b.Cursor()
	for k, v := c.First(); k != nil; k, v = c.Next() {
		if v != nil {
			continue // plain key, reserved metadata
		}
		names = append(names, string(k))
	}
	return names
}

func childPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	return path.Join(parent, name)
}

func checkName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.Contains(name, "/") {
		return errors.Wrapf(ErrReservedName, "%q", name)
	}
	return nil
}
