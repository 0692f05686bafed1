package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gridscope/gridscope/internal/table"
)

// Column width heuristics for loaded datasets, in terminal cells.
const (
	numericColumnWidth = 12
	textColumnWidth    = 24
	datasetMinWidth    = 4
)

// BuildColumns derives engine column declarations from the dataset header.
// Numeric columns get typed accessors (so sorting compares numerically) and
// right alignment; everything else is treated as text.
func BuildColumns(ds *Dataset) []table.Column[Row] {
	cols := make([]table.Column[Row], 0, len(ds.Columns))
	for i, name := range ds.Columns {
		col := table.NewColumn(columnID(name, i), name, textAccessor(i))
		col.Width = textColumnWidth
		col.MinWidth = datasetMinWidth
		if i < len(ds.Numeric) && ds.Numeric[i] {
			col.Accessor = numericAccessor(i)
			col.Renderer = NumberRenderer()
			col.Width = numericColumnWidth
			col.Align = table.AlignRight
		}
		cols = append(cols, col)
	}
	return cols
}

// columnID normalizes a header cell into a usable, unique column id. Headers
// can be empty or duplicated in the wild; the positional suffix keeps ids
// unique either way.
func columnID(name string, index int) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.ReplaceAll(id, " ", "_")
	if id == "" {
		id = "column"
	}
	return id + "_" + strconv.Itoa(index)
}

// textAccessor reads the raw cell text.
func textAccessor(col int) table.Accessor[Row] {
	return func(row Row) any {
		return row.Cell(col)
	}
}

// NumberRenderer formats numeric cells with locale-aware grouping
// separators. Integral values render without a fraction; everything else
// keeps two digits. Non-numeric values fall through to plain formatting.
func NumberRenderer() table.Renderer[Row] {
	p := message.NewPrinter(language.English)
	return func(value any, _ Row, _ int) string {
		n, ok := value.(float64)
		if !ok {
			if value == nil {
				return ""
			}
			return fmt.Sprint(value)
		}
		digits := 2
		if n == math.Trunc(n) {
			digits = 0
		}
		return p.Sprint(number.Decimal(n, number.MaxFractionDigits(digits)))
	}
}

// numericAccessor parses the cell as a float so the sort comparator takes
// its numeric branch. Unparseable or empty cells degrade to the raw text.
func numericAccessor(col int) table.Accessor[Row] {
	return func(row Row) any {
		cell := strings.TrimSpace(row.Cell(col))
		if cell == "" {
			return nil
		}
		n, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return row.Cell(col)
		}
		return n
	}
}
