package tui

import (
	"fmt"
	"strings"

	"github.com/gridscope/gridscope/internal/table"
)

const (
	// selectionCellWidth is the terminal width of the "[x]" marker column.
	selectionCellWidth = 3
	// actionsCellWidth is the terminal width reserved for the actions cell.
	actionsCellWidth = 12
	// cellGap separates adjacent cells.
	cellGap = " "

	sortAscMarker  = "↑"
	sortDescMarker = "↓"
	truncateMarker = "…"
)

// View renders the shell for the current state.
func (m *Model[T]) View() string {
	switch m.state {
	case StateLoading:
		return m.loading.View() + " Loading dataset..."
	case StateError:
		return ErrorStyle.Render("Error: "+m.err.Error()) + "\n"
	case StateQuitting:
		return ""
	default:
		return m.browseView()
	}
}

func (m *Model[T]) browseView() string {
	cols := m.visibleColumns()

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.headerLine(cols))
	b.WriteString("\n")
	b.WriteString(m.bodyLines(cols))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

// headerLine renders the column headers with sort indicators, plus the
// bottom border from HeaderStyle. The focused column is highlighted.
func (m *Model[T]) headerLine(cols []table.Column[T]) string {
	sorted := m.engine.Sort()
	focused, _ := m.focusedColumn()

	cells := make([]string, 0, len(cols)+2)
	if m.engine.Selectable() {
		cells = append(cells, pad("", selectionCellWidth, table.AlignLeft))
	}
	for _, col := range cols {
		label := col.Header
		if sorted.Key == col.ID {
			marker := sortAscMarker
			if sorted.Direction == table.SortDesc {
				marker = sortDescMarker
			}
			label += " " + marker
		}
		cell := pad(label, m.colWidth(col), col.Align)
		if col.ID == focused.ID {
			cell = FocusedColumnStyle.Render(cell)
		}
		cells = append(cells, cell)
	}
	if m.engine.HasActions() {
		cells = append(cells, pad("Actions", actionsCellWidth, table.AlignLeft))
	}

	return HeaderStyle.Width(m.width).Render(strings.Join(cells, cellGap))
}

// bodyLines renders the strictly visible window rows, padding the remainder
// of the viewport with blank lines so the footer stays put.
func (m *Model[T]) bodyLines(cols []table.Column[T]) string {
	w := m.engine.Window()
	height := m.bodyHeight()

	lines := make([]string, 0, height)
	if w.EndIndex >= w.StartIndex {
		for idx := w.StartIndex; idx <= w.EndIndex && len(lines) < height; idx++ {
			row, ok := m.engine.Row(idx)
			if !ok {
				break
			}
			lines = append(lines, m.rowLine(cols, row, idx))
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model[T]) rowLine(cols []table.Column[T], row T, idx int) string {
	cells := make([]string, 0, len(cols)+2)
	if m.engine.Selectable() {
		marker := markerUnselected
		if m.engine.IsSelected(idx) {
			marker = markerSelected
		}
		cells = append(cells, marker)
	}
	for _, col := range cols {
		cells = append(cells, pad(m.engine.RenderCell(col, row, idx), m.colWidth(col), col.Align))
	}
	if m.engine.HasActions() {
		cells = append(cells, pad(m.engine.RenderActions(row, idx), actionsCellWidth, table.AlignLeft))
	}

	line := strings.Join(cells, cellGap)
	switch {
	case idx == m.cursor:
		return CursorRowStyle.Width(m.width).Render(line)
	case m.engine.IsSelected(idx):
		return SelectedRowStyle.Render(line)
	default:
		return line
	}
}

// statusLine shows the active input prompt, or a row and selection summary.
func (m *Model[T]) statusLine() string {
	switch m.mode {
	case inputSearch:
		return PromptStyle.Render("search: ") + m.input.View()
	case inputFilter:
		return PromptStyle.Render("filter: ") + m.input.View()
	}

	status := fmt.Sprintf("%d/%d rows", m.engine.Len(), m.engine.TotalRows())
	if n := m.engine.SelectionCount(); n > 0 {
		status += fmt.Sprintf(" · %d selected", n)
	}
	if q := m.engine.Search(); q != "" {
		status += fmt.Sprintf(" · search %q", q)
	}
	return StatusStyle.Render(status)
}

func (m *Model[T]) helpLine() string {
	parts := []string{"↑↓ move", "←→ column", "s sort", "q quit"}
	if m.engine.Searchable() {
		parts = append(parts, "/ search")
	}
	if m.engine.Filterable() {
		parts = append(parts, "f filter")
	}
	if m.engine.Selectable() {
		parts = append(parts, "space select")
	}
	return HelpStyle.Render(strings.Join(parts, " · "))
}

// splitColumns groups the engine's columns by pinning.
func (m *Model[T]) splitColumns() (left, mid, right []table.Column[T]) {
	for _, c := range m.engine.Columns() {
		switch c.Sticky {
		case table.StickyLeft:
			left = append(left, c)
		case table.StickyRight:
			right = append(right, c)
		default:
			mid = append(mid, c)
		}
	}
	return left, mid, right
}

// visibleColumns returns the columns that fit the terminal width, in render
// order. Pinned columns always render; the engine's horizontal scroll
// offset is the index of the first unpinned column shown, so header and
// body stay aligned by construction.
func (m *Model[T]) visibleColumns() []table.Column[T] {
	left, mid, right := m.splitColumns()

	offset := int(m.engine.HorizontalScroll())
	if offset > len(mid) {
		offset = len(mid)
	}

	budget := m.width - m.fixedWidth(left, right)
	shown := make([]table.Column[T], 0, len(left)+len(mid)+len(right))
	shown = append(shown, left...)
	for _, c := range mid[offset:] {
		cost := m.colWidth(c) + len(cellGap)
		if cost > budget && len(shown) > len(left) {
			break
		}
		shown = append(shown, c)
		budget -= cost
	}
	return append(shown, right...)
}

// fixedWidth is the terminal width consumed before any unpinned column:
// selection marker, pinned columns, and the actions cell.
func (m *Model[T]) fixedWidth(left, right []table.Column[T]) int {
	w := 0
	if m.engine.Selectable() {
		w += selectionCellWidth + len(cellGap)
	}
	for _, c := range append(left[:len(left):len(left)], right...) {
		w += m.colWidth(c) + len(cellGap)
	}
	if m.engine.HasActions() {
		w += actionsCellWidth + len(cellGap)
	}
	return w
}

// maxColumnOffset is the largest useful horizontal scroll offset.
func (m *Model[T]) maxColumnOffset() int {
	_, mid, _ := m.splitColumns()
	if len(mid) == 0 {
		return 0
	}
	return len(mid) - 1
}

// scrollColumns shifts the first visible unpinned column.
func (m *Model[T]) scrollColumns(delta int) {
	offset := int(m.engine.HorizontalScroll()) + delta
	if limit := m.maxColumnOffset(); offset > limit {
		offset = limit
	}
	m.engine.SetHorizontalScroll(float64(offset))
}

// ensureColumnVisible scrolls horizontally until the focused column is in
// the rendered set. Pinned columns are always visible.
func (m *Model[T]) ensureColumnVisible() {
	col, ok := m.focusedColumn()
	if !ok || col.Sticky != table.StickyNone {
		return
	}
	_, mid, _ := m.splitColumns()
	pos := -1
	for i, c := range mid {
		if c.ID == col.ID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return
	}
	if pos < int(m.engine.HorizontalScroll()) {
		m.engine.SetHorizontalScroll(float64(pos))
		return
	}
	for int(m.engine.HorizontalScroll()) < pos && !m.columnShown(col.ID) {
		m.scrollColumns(1)
	}
}

func (m *Model[T]) columnShown(id string) bool {
	for _, c := range m.visibleColumns() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// colWidth converts the engine's column width to terminal cells.
func (m *Model[T]) colWidth(col table.Column[T]) int {
	w := int(m.engine.ColumnWidth(col.ID))
	if w < selectionCellWidth {
		w = selectionCellWidth
	}
	return w
}

// pad truncates and aligns text into a fixed-width cell.
func pad(text string, width int, align table.Align) string {
	runes := []rune(text)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + truncateMarker
	}
	gap := width - len(runes)
	switch align {
	case table.AlignRight:
		return strings.Repeat(" ", gap) + text
	case table.AlignCenter:
		lead := gap / 2
		return strings.Repeat(" ", lead) + text + strings.Repeat(" ", gap-lead)
	default:
		return text + strings.Repeat(" ", gap)
	}
}
