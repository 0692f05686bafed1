package table

import "sort"

// Selection tracks selected positions within the current filtered+sorted
// sequence. Indices are positional, not stable row identities: a re-filter
// or re-sort does not remap them (see DESIGN.md for the rationale), it only
// prunes entries that fall out of range.
type Selection struct {
	indices map[int]struct{}
}

// newSelection returns an empty selection.
func newSelection() Selection {
	return Selection{indices: make(map[int]struct{})}
}

// Set adds or removes a single index.
func (s *Selection) Set(index int, selected bool) {
	if selected {
		s.indices[index] = struct{}{}
		return
	}
	delete(s.indices, index)
}

// SetAll replaces the selection with every index in [0, length) when
// selected is true, or empties it otherwise.
func (s *Selection) SetAll(length int, selected bool) {
	s.indices = make(map[int]struct{}, length)
	if !selected {
		return
	}
	for i := 0; i < length; i++ {
		s.indices[i] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.indices = make(map[int]struct{})
}

// Has reports whether index is selected.
func (s *Selection) Has(index int) bool {
	_, ok := s.indices[index]
	return ok
}

// Count returns the number of selected indices.
func (s *Selection) Count() int {
	return len(s.indices)
}

// Indices returns the selected positions in ascending order.
func (s *Selection) Indices() []int {
	out := make([]int, 0, len(s.indices))
	for i := range s.indices {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Prune drops indices outside [0, length) so the selection is always a
// subset of the current sequence at the moment of any read.
func (s *Selection) Prune(length int) {
	for i := range s.indices {
		if i < 0 || i >= length {
			delete(s.indices, i)
		}
	}
}
