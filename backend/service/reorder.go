package service

// ReorderItem is one row of a batch reorder request: the entity's id and its
// new zero-based position within the scope.
type ReorderItem struct {
	ID        int64 `json:"id"`
	SortOrder int   `json:"sort_order"`
}

// ArrayMove returns a copy of list with the element at from moved to to.
// Out-of-range indexes leave the order untouched.
func ArrayMove[T any](list []T, from int, to int) []T {
	result := make([]T, len(list))
	copy(result, list)
	if from < 0 || from >= len(result) || to < 0 || to >= len(result) || from == to {
		return result
	}
	item := result[from]
	if from < to {
		copy(result[from:], result[from+1:to+1])
	} else {
		copy(result[to+1:], result[to:from])
	}
	result[to] = item
	return result
}

// ComputeDragReorder models a drop of draggedID onto targetID within one
// scope: the dragged item takes the target's position and every item in the
// scope is assigned a dense zero-based sort order. The result covers the
// whole scope, one entry per input id. It returns nil when either id is
// missing from ids — callers treat that as a no-op.
func ComputeDragReorder(ids []int64, draggedID int64, targetID int64) []ReorderItem {
	oldIndex := -1
	newIndex := -1
	for i, id := range ids {
		if id == draggedID {
			oldIndex = i
		}
		if id == targetID {
			newIndex = i
		}
	}
	if oldIndex < 0 || newIndex < 0 {
		return nil
	}

	moved := ArrayMove(ids, oldIndex, newIndex)
	items := make([]ReorderItem, len(moved))
	for i, id := range moved {
		items[i] = ReorderItem{ID: id, SortOrder: i}
	}
	return items
}

// OrderedIDs flattens a reorder batch into the id sequence it describes.
func OrderedIDs(items []ReorderItem) []int64 {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
