package table

import (
	"maps"
	"sort"
	"strings"
)

// SortDirection orders a sorted column ascending or descending.
type SortDirection int

const (
	// SortAsc sorts smallest-first.
	SortAsc SortDirection = iota
	// SortDesc sorts largest-first.
	SortDesc
)

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

// SortState names the sorted column and its direction. An empty Key means
// the sequence keeps its filtered order.
type SortState struct {
	Key       string
	Direction SortDirection
}

// QueryState is the full query applied ahead of windowing: a free-text
// search across all columns, per-column substring filters ANDed together,
// and a single-key sort.
type QueryState struct {
	Search  string
	Filters map[string]string
	Sort    SortState
}

// clone returns a deep copy so cached query snapshots never alias live
// engine state.
func (q QueryState) clone() QueryState {
	out := q
	out.Filters = maps.Clone(q.Filters)
	return out
}

// applySearch keeps rows where any column's stringified value contains the
// search term, case-insensitively. An empty term returns data unchanged.
func applySearch[T any](data []T, columns []Column[T], term string) []T {
	if term == "" {
		return data
	}
	needle := strings.ToLower(term)
	out := make([]T, 0, len(data))
	for _, row := range data {
		for _, col := range columns {
			if strings.Contains(strings.ToLower(formatValue(cellValue(col, row))), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// applyFilters restricts data to rows matching every non-empty per-column
// filter. Filters referencing unknown column ids are ignored.
func applyFilters[T any](data []T, columns []Column[T], filters map[string]string) []T {
	active := make([]Column[T], 0, len(filters))
	needles := make([]string, 0, len(filters))
	for _, col := range columns {
		if val, ok := filters[col.ID]; ok && val != "" {
			active = append(active, col)
			needles = append(needles, strings.ToLower(val))
		}
	}
	if len(active) == 0 {
		return data
	}
	out := make([]T, 0, len(data))
	for _, row := range data {
		match := true
		for i, col := range active {
			if !strings.Contains(strings.ToLower(formatValue(cellValue(col, row))), needles[i]) {
				match = false
				break
			}
		}
		if match {
			out = append(out, row)
		}
	}
	return out
}

// applySort returns a new sequence ordered by the sort key. Equal values keep
// their relative input order; descending order inverts the comparator by
// swapping indices, which preserves stability for the equality branch.
func applySort[T any](data []T, columns []Column[T], state SortState) []T {
	if state.Key == "" {
		return data
	}
	var key *Column[T]
	for i := range columns {
		if columns[i].ID == state.Key {
			key = &columns[i]
			break
		}
	}
	if key == nil || !key.Sortable {
		return data
	}

	sorted := make([]T, len(data))
	copy(sorted, data)
	sort.SliceStable(sorted, func(i, j int) bool {
		if state.Direction == SortDesc {
			i, j = j, i
		}
		return compareValues(cellValue(*key, sorted[i]), cellValue(*key, sorted[j])) < 0
	})
	return sorted
}

// applyQuery runs the full pipeline: search, then column filters, then sort.
// It is pure; no stage mutates its input.
func applyQuery[T any](data []T, columns []Column[T], query QueryState) []T {
	out := applySearch(data, columns, query.Search)
	out = applyFilters(out, columns, query.Filters)
	return applySort(out, columns, query.Sort)
}

// compareValues orders two accessor results: numerically when both are
// numeric, otherwise by case-insensitive string representation.
func compareValues(a, b any) int {
	na, aok := numericValue(a)
	nb, bok := numericValue(b)
	if aok && bok {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(formatValue(a)), strings.ToLower(formatValue(b)))
}
