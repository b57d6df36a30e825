package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollection_CollectAndRemove(t *testing.T) {
	c := NewCollection()

	assert.False(t, c.Has("Strawberry", 1))

	c.CollectN(1, "Strawberry", 3)
	c.Collect(1, "Strawberry")
	assert.Equal(t, 4, c.Count(1, "Strawberry"))
	assert.Equal(t, 0, c.Count(2, "Strawberry"), "players are independent")

	assert.True(t, c.Remove(1, "Strawberry"))
	assert.Equal(t, 3, c.Count(1, "Strawberry"))
	assert.False(t, c.Remove(1, "Cassette"))

	c.CollectN(1, "Lamp", 0)
	assert.Equal(t, []string{"Strawberry"}, c.Held(1))
}

func TestCollection_Queries(t *testing.T) {
	c := NewCollection()
	c.Collect(1, "a")
	c.Collect(1, "b")

	assert.True(t, c.HasAny([]string{"x", "b"}, 1))
	assert.False(t, c.HasAny([]string{"x", "y"}, 1))
	assert.True(t, c.HasAll([]string{"a", "b"}, 1))
	assert.False(t, c.HasAll([]string{"a", "x"}, 1))
	assert.False(t, c.HasAll([]string{"a"}, 2))
}

func TestCollection_Groups(t *testing.T) {
	c := NewCollection()
	c.SetGroups(1, map[string][]string{
		"berries": {"Strawberry", "Strawberry"},
		"hearts":  {"Heart A", "Heart B"},
	})

	c.CollectN(1, "Strawberry", 5)
	c.Collect(1, "Heart A")

	assert.Equal(t, 5, c.GroupCount("berries", 1), "duplicate members count once")
	assert.True(t, c.HasGroup("berries", 1, 5))
	assert.False(t, c.HasGroup("berries", 1, 6))
	assert.True(t, c.HasGroup("hearts", 1, 1))
	assert.False(t, c.HasGroup("hearts", 1, 2))

	assert.False(t, c.HasGroup("unknown", 1, 1))
	assert.True(t, c.HasGroup("unknown", 1, 0))
	assert.False(t, c.HasGroup("berries", 2, 1), "groups are per player")
}
