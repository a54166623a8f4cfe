package datafile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupIsIdempotent(t *testing.T) {
	d, rep := newTestFile(t)

	require.True(t, d.CreateGroup("run1", "exp1", "first pass", "sweep"))
	require.True(t, d.CreateGroup("run1", "exp1", "first pass", "sweep"))
	assert.Empty(t, rep.events, "second identical call must not report")

	members, err := d.Members("exp1")
	require.NoError(t, err)
	assert.Equal(t, []string{"run1"}, members, "exactly one group after two calls")
	assert.True(t, d.IsGroup("exp1/run1"))
}

func TestCreateGroupStampsNewGroups(t *testing.T) {
	d, _ := newTestFile(t)

	require.True(t, d.CreateGroup("run1", "exp1", "cooldown 12", "sweep"))

	var provenance string
	require.NoError(t, d.Walk(func(info EntryInfo) error {
		if info.Path == "/exp1/run1" {
			provenance = info.Provenance
			return ErrStopWalk
		}
		return nil
	}))
	assert.Contains(t, provenance, "timestamp:")
	assert.Contains(t, provenance, "note:cooldown 12")
	assert.Contains(t, provenance, "grouptype:sweep")
}

func TestCreateGroupAtRootIsNoop(t *testing.T) {
	d, rep := newTestFile(t)

	require.True(t, d.CreateGroup("", "", "", ""))
	assert.Empty(t, rep.events)
}

func TestCreateGroupFailsOverDataset(t *testing.T) {
	d, rep := newTestFile(t)

	require.True(t, d.SaveVariable("blocker", "exp1", 1.0, ""))

	// The dataset occupies an intermediate segment.
	require.False(t, d.CreateGroup("deeper", "exp1/blocker", "", ""))
	assert.ErrorIs(t, rep.lastErr(), ErrPathCollision)

	// And a dataset occupying the requested group path itself.
	require.False(t, d.CreateGroup("blocker", "exp1", "", ""))
	assert.ErrorIs(t, rep.lastErr(), ErrPathCollision)
}

func TestCreateGroupRejectsInvalidName(t *testing.T) {
	d, rep := newTestFile(t)

	require.False(t, d.CreateGroup(".hidden", "exp1", "", ""))
	assert.ErrorIs(t, rep.lastErr(), ErrInvalidPath)
}
