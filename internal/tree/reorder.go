package tree

// Reorder applies drag-and-drop array-move semantics: the element with movedID
// is removed from its current index and reinserted at targetID's current
// index, shifting everything between by one. When targetID is empty, unknown,
// or equal to movedID, the input slice is returned unchanged (same backing
// array) so callers can skip spurious persistence writes.
func Reorder[T any](list []T, idOf func(T) string, movedID, targetID string) []T {
	if movedID == "" || targetID == "" || movedID == targetID {
		return list
	}
	from, to := -1, -1
	for i, v := range list {
		switch idOf(v) {
		case movedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 || from == to {
		return list
	}

	out := make([]T, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	// Insert at the target's original index: moving forward lands the element
	// exactly on the target's position, moving backward is symmetric.
	out = append(out[:to], append([]T{list[from]}, out[to:]...)...)
	return out
}

// sameSlice reports whether two slices share the same backing array and
// length, i.e. Reorder returned its input untouched.
func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
