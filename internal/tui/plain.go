package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gridscope/gridscope/internal/table"
)

// plainMaxRows caps non-interactive output so a huge dataset piped through
// the plain renderer stays readable.
const plainMaxRows = 500

// RenderPlain writes the engine's current filtered+sorted sequence as an
// aligned text table, for non-TTY output. No windowing, no styling.
func RenderPlain[T any](w io.Writer, engine *table.Engine[T]) error {
	cols := engine.Columns()

	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = int(engine.ColumnWidth(col.ID))
		if widths[i] < len(col.Header) {
			widths[i] = len(col.Header)
		}
	}

	headers := make([]string, len(cols))
	rules := make([]string, len(cols))
	for i, col := range cols {
		headers[i] = pad(col.Header, widths[i], table.AlignLeft)
		rules[i] = strings.Repeat("-", widths[i])
	}
	if _, err := fmt.Fprintln(w, strings.Join(headers, "  ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Join(rules, "  ")); err != nil {
		return err
	}

	total := engine.Len()
	shown := total
	if shown > plainMaxRows {
		shown = plainMaxRows
	}
	cells := make([]string, len(cols))
	for idx := 0; idx < shown; idx++ {
		row, ok := engine.Row(idx)
		if !ok {
			break
		}
		for i, col := range cols {
			cells[i] = pad(engine.RenderCell(col, row, idx), widths[i], col.Align)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "  ")); err != nil {
			return err
		}
	}

	if shown < total {
		_, err := fmt.Fprintf(w, "... %d more rows\n", total-shown)
		return err
	}
	return nil
}
