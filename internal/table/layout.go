package table

// Fixed width allowances for the synthetic leading columns.
const (
	// selectionColumnWidth is reserved for the selection checkbox column.
	selectionColumnWidth = 48
	// actionsColumnWidth is reserved for the per-row actions slot.
	actionsColumnWidth = 96
)

// Layout holds per-column width state, seeded from the declared column
// widths and mutated only by explicit resize operations.
type Layout struct {
	widths map[string]float64
	order  []string
	minima map[string]float64
	maxima map[string]float64

	// Allowances included in TotalWidth when the corresponding feature is
	// enabled on the engine.
	selection bool
	actions   bool
}

// newLayout seeds widths from the declared column defaults.
func newLayout[T any](columns []Column[T], selection, actions bool) *Layout {
	l := &Layout{
		widths:    make(map[string]float64, len(columns)),
		order:     make([]string, 0, len(columns)),
		minima:    make(map[string]float64, len(columns)),
		maxima:    make(map[string]float64, len(columns)),
		selection: selection,
		actions:   actions,
	}
	for _, col := range columns {
		width := col.Width
		if width <= 0 {
			width = defaultColumnWidth
		}
		l.widths[col.ID] = width
		l.order = append(l.order, col.ID)
		l.minima[col.ID] = col.MinWidth
		l.maxima[col.ID] = col.MaxWidth
	}
	return l
}

// Resize sets a new width for the column, clamped to the declared
// [MinWidth, MaxWidth] bounds. Negative widths and unknown column ids are
// absorbed as no-ops rather than errors.
func (l *Layout) Resize(columnID string, width float64) {
	if _, ok := l.widths[columnID]; !ok || width < 0 {
		return
	}
	if lo := l.minima[columnID]; lo > 0 && width < lo {
		width = lo
	}
	if hi := l.maxima[columnID]; hi > 0 && width > hi {
		width = hi
	}
	l.widths[columnID] = width
}

// Width returns the current width of the column, or 0 for unknown ids.
func (l *Layout) Width(columnID string) float64 {
	return l.widths[columnID]
}

// TotalWidth sums the current widths across all declared columns plus the
// fixed allowances for the selection and actions columns when enabled. Both
// header and body lay out against this value.
func (l *Layout) TotalWidth() float64 {
	total := 0.0
	for _, id := range l.order {
		total += l.widths[id]
	}
	if l.selection {
		total += selectionColumnWidth
	}
	if l.actions {
		total += actionsColumnWidth
	}
	return total
}
