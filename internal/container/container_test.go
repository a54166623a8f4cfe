package container

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.qdf"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesRootGroup(t *testing.T) {
	s := openTestStore(t)

	err := s.View(func(root *Node) error {
		assert.Equal(t, "/", root.Path())
		assert.True(t, root.IsGroup())
		assert.Empty(t, root.Children())
		return nil
	})
	require.NoError(t, err)
}

func TestGroupAndDatasetKinds(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(root *Node) error {
		g, err := root.CreateGroup("exp1")
		require.NoError(t, err)
		require.Equal(t, "/exp1", g.Path())

		_, err = g.CreateDataset("trace", []byte{1, 2, 3})
		require.NoError(t, err)

		assert.Equal(t, KindGroup, root.ChildKind("exp1"))
		assert.Equal(t, KindDataset, g.ChildKind("trace"))
		assert.Equal(t, KindAbsent, g.ChildKind("missing"))
		return nil
	})
	require.NoError(t, err)
}

func TestCreateRejectsOccupiedName(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(root *Node) error {
		_, err := root.CreateGroup("exp1")
		require.NoError(t, err)

		_, err = root.CreateGroup("exp1")
		assert.ErrorIs(t, err, ErrNodeExists)

		_, err = root.CreateDataset("exp1", nil)
		assert.ErrorIs(t, err, ErrNodeExists)
		return nil
	})
	require.NoError(t, err)
}

func TestReservedNamesRejected(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(root *Node) error {
		for _, name := range []string{"", ".kind", ".data", "a/b"} {
			_, err := root.CreateGroup(name)
			assert.ErrorIs(t, err, ErrReservedName, "name %q", name)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestAttributesAndData(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(root *Node) error {
		ds, err := root.CreateDataset("v", []byte("payload"))
		require.NoError(t, err)

		require.NoError(t, ds.SetAttr("created_by_pyqlab", "timestamp:x"))
		require.NoError(t, ds.SetAttr("units", "mV"))

		got, ok := ds.Attr("units")
		require.True(t, ok)
		assert.Equal(t, "mV", got)

		_, ok = ds.Attr("missing")
		assert.False(t, ok)

		assert.Equal(t, []string{"created_by_pyqlab", "units"}, ds.Attrs())
		assert.Equal(t, []byte("payload"), ds.Data())
		return nil
	})
	require.NoError(t, err)
}

func TestChildrenSkipsMetadataKeys(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(root *Node) error {
		require.NoError(t, root.SetAttr("note", "hello"))
		_, err := root.CreateGroup("b")
		require.NoError(t, err)
		_, err = root.CreateDataset("a", nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, root.Children())
		return nil
	})
	require.NoError(t, err)
}

func TestDeleteChild(t *testing.T) {
	s := openTestStore(t)

	err := s.Update(func(root *Node) error {
		_, err := root.CreateDataset("old", []byte{1})
		require.NoError(t, err)
		require.NoError(t, root.DeleteChild("old"))
		assert.Equal(t, KindAbsent, root.ChildKind("old"))

		err = root.DeleteChild("old")
		assert.ErrorIs(t, err, ErrNoSuchChild)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateErrorRollsBack(t *testing.T) {
	s := openTestStore(t)

	boom := assert.AnError
	err := s.Update(func(root *Node) error {
		_, err := root.CreateGroup("doomed")
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.View(func(root *Node) error {
		assert.Equal(t, KindAbsent, root.ChildKind("doomed"))
		return nil
	})
	require.NoError(t, err)
}

func TestPersistsAcrossReopen(t *testing.T) {
	file := filepath.Join(t.TempDir(), "persist.qdf")

	s, err := Open(file)
	require.NoError(t, err)
	err = s.Update(func(root *Node) error {
		_, err := root.CreateDataset("kept", []byte("v"))
		return err
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := Open(file)
	require.NoError(t, err)
	defer s2.Close()
	err = s2.View(func(root *Node) error {
		assert.Equal(t, KindDataset, root.ChildKind("kept"))
		assert.Equal(t, []byte("v"), root.Child("kept").Data())
		return nil
	})
	require.NoError(t, err)
}
