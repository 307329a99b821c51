package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayMove(t *testing.T) {
	list := []int64{10, 20, 30, 40}

	assert.Equal(t, []int64{20, 30, 10, 40}, ArrayMove(list, 0, 2))
	assert.Equal(t, []int64{30, 10, 20, 40}, ArrayMove(list, 2, 0))
	assert.Equal(t, []int64{10, 20, 30, 40}, ArrayMove(list, 1, 1))

	// Out-of-range indexes leave the order untouched.
	assert.Equal(t, list, ArrayMove(list, -1, 2))
	assert.Equal(t, list, ArrayMove(list, 0, 4))

	// The input slice is never mutated.
	_ = ArrayMove(list, 0, 3)
	assert.Equal(t, []int64{10, 20, 30, 40}, list)
}

func TestComputeDragReorder(t *testing.T) {
	// Dragging index 0 onto index 2 in a 3-item scope yields
	// old[1]->0, old[2]->1, old[0]->2.
	items := ComputeDragReorder([]int64{101, 102, 103}, 101, 103)
	assert.Equal(t, []ReorderItem{
		{ID: 102, SortOrder: 0},
		{ID: 103, SortOrder: 1},
		{ID: 101, SortOrder: 2},
	}, items)

	// Dragging backwards.
	items = ComputeDragReorder([]int64{101, 102, 103}, 103, 101)
	assert.Equal(t, []ReorderItem{
		{ID: 103, SortOrder: 0},
		{ID: 101, SortOrder: 1},
		{ID: 102, SortOrder: 2},
	}, items)

	// Dropping an item onto itself keeps the dense ordering.
	items = ComputeDragReorder([]int64{101, 102, 103}, 102, 102)
	assert.Equal(t, []ReorderItem{
		{ID: 101, SortOrder: 0},
		{ID: 102, SortOrder: 1},
		{ID: 103, SortOrder: 2},
	}, items)
}

func TestComputeDragReorderMissingIDs(t *testing.T) {
	// An id outside the scope makes the drop a no-op.
	assert.Nil(t, ComputeDragReorder([]int64{101, 102}, 999, 101))
	assert.Nil(t, ComputeDragReorder([]int64{101, 102}, 101, 999))
	assert.Nil(t, ComputeDragReorder(nil, 1, 2))
}

func TestOrderedIDs(t *testing.T) {
	items := []ReorderItem{{ID: 7, SortOrder: 0}, {ID: 3, SortOrder: 1}}
	assert.Equal(t, []int64{7, 3}, OrderedIDs(items))
}
