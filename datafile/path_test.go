package datafile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		root, groupKey, name string
		parent, leaf         string
	}{
		{"/", "exp1/run2", "trace", "/exp1/run2", "trace"},
		{"/", "", "readme", "/", "readme"},
		{"/lab", "exp1", "trace", "/lab/exp1", "trace"},
		{"/", "/exp1/", "trace", "/exp1", "trace"},
		{"/", "exp1", "run2/trace", "/exp1/run2", "trace"},
	}
	for _, tt := range tests {
		parent, leaf, err := Resolve(tt.root, tt.groupKey, tt.name)
		require.NoError(t, err, "Resolve(%q, %q, %q)", tt.root, tt.groupKey, tt.name)
		assert.Equal(t, tt.parent, parent)
		assert.Equal(t, tt.leaf, leaf)
	}
}

func TestResolveRejectsEmptyName(t *testing.T) {
	_, _, err := Resolve("/", "", "")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, _, err = Resolve("/", "/", "/")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestResolveRejectsBadSegments(t *testing.T) {
	_, _, err := Resolve("/", "exp1", ".hidden")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, _, err = Resolve("/", "exp\x001", "trace")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/", CleanPath(""))
	assert.Equal(t, "/", CleanPath("/"))
	assert.Equal(t, "/a/b", CleanPath("a/b/"))
	assert.Equal(t, "/a/b", CleanPath("/a//b"))
}

func TestSplitPath(t *testing.T) {
	assert.Empty(t, SplitPath("/"))
	assert.Equal(t, []string{"foo"}, SplitPath("/foo"))
	assert.Equal(t, []string{"foo", "bar"}, SplitPath("/foo/bar/"))
}
