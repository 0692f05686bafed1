package table

import (
	"fmt"
	"strconv"
)

// defaultColumnWidth is the width assigned to columns declared without one.
const defaultColumnWidth = 150

// Align controls horizontal cell alignment within a column.
type Align int

const (
	// AlignLeft aligns cell content to the left edge (the default).
	AlignLeft Align = iota
	// AlignCenter centers cell content.
	AlignCenter
	// AlignRight aligns cell content to the right edge.
	AlignRight
)

// Sticky pins a column to one edge of the table during horizontal scrolling.
type Sticky int

const (
	// StickyNone lets the column scroll with the body (the default).
	StickyNone Sticky = iota
	// StickyLeft pins the column to the left edge.
	StickyLeft
	// StickyRight pins the column to the right edge.
	StickyRight
)

// Accessor extracts a display value from a row. It must be total and
// side-effect free; a panicking accessor is contained by the engine and the
// affected cell degrades to an empty string.
type Accessor[T any] func(row T) any

// Renderer produces the rendered representation of a single cell. value is
// the accessor result, row the full record, and index the row's position in
// the current filtered+sorted sequence.
type Renderer[T any] func(value any, row T, index int) string

// Column declares a single table column: identity, header text, the accessor
// used for display/search/filter/sort, layout bounds, and behavior flags.
type Column[T any] struct {
	// ID uniquely identifies the column within a table instance. Layout and
	// filter state are keyed by it; duplicates are rejected at construction.
	ID string

	// Header is the text shown in the header row.
	Header string

	// Accessor extracts the cell value for this column from a row.
	Accessor Accessor[T]

	// Width is the initial column width. MinWidth/MaxWidth, when > 0, bound
	// later resizes.
	Width    float64
	MinWidth float64
	MaxWidth float64

	// Renderer overrides the default stringification for this column's
	// cells. Invocations are guarded: a panicking renderer yields a
	// placeholder instead of taking down the whole table.
	Renderer Renderer[T]

	// Sortable and Filterable gate the per-column sort and filter
	// operations.
	Sortable   bool
	Filterable bool

	// Align controls horizontal cell alignment.
	Align Align

	// Sticky pins the column to an edge during horizontal scrolling.
	Sticky Sticky
}

// NewColumn returns a Column with the declared identity and accessor and the
// default behavior flags: sortable, filterable, left-aligned, default width.
func NewColumn[T any](id, header string, accessor Accessor[T]) Column[T] {
	return Column[T]{
		ID:         id,
		Header:     header,
		Accessor:   accessor,
		Width:      defaultColumnWidth,
		Sortable:   true,
		Filterable: true,
	}
}

// cellValue evaluates a column's accessor for the given row. Accessors are
// caller-supplied code, so the call is guarded: a panic or a missing accessor
// yields nil rather than propagating.
func cellValue[T any](col Column[T], row T) (value any) {
	if col.Accessor == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			value = nil
		}
	}()
	return col.Accessor(row)
}

// formatValue stringifies an accessor result for search, filter, sort, and
// default rendering. nil becomes the empty string so one bad cell never
// blanks the table.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// numericValue reports v as a float64 when it carries any built-in numeric
// type. The sort comparator uses it to decide between numeric and string
// comparison.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
