// Package ingest loads tabular datasets from CSV and JSON files into the
// row/column shape consumed by the table engine. Each loaded row is tagged
// with a ULID so rows keep a stable identity independent of their position
// in any filtered or sorted view.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/domonda/go-retable/csvtable"
	"github.com/oklog/ulid/v2"

	"github.com/gridscope/gridscope/internal/logging"
)

// ErrEmptyDataset is returned when a file contains no header row.
var ErrEmptyDataset = errors.New("dataset has no header row")

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Row is one loaded record: a stable identity plus one cell per column.
type Row struct {
	// ID is assigned at load time and survives filtering and sorting.
	ID ulid.ULID
	// Cells holds the raw cell text, indexed like Dataset.Columns.
	Cells []string
}

// Cell returns the cell at the given column index, or "" when the row is
// ragged.
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// Dataset is a loaded table: column names in display order, a numeric flag
// per column inferred from the data, and the rows themselves.
type Dataset struct {
	Columns []string
	Numeric []bool
	Rows    []Row
}

// Load reads a single dataset file, dispatching on the file extension:
// .csv/.tsv for delimiter-separated text (format auto-detected), .json for
// an array of flat objects.
func Load(ctx context.Context, path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var ds *Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		ds, err = parseCSV(data)
	case ".json":
		ds, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	ds.inferNumericColumns()
	logging.FromContext(ctx).Debug().
		Str("path", path).
		Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).
		Msg("loaded dataset")
	return ds, nil
}

// parseCSV parses delimiter-separated data with automatic encoding and
// separator detection. The first row is the header.
func parseCSV(data []byte) (*Dataset, error) {
	rows, _, err := csvtable.ParseDetectFormat(data, nil)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{Columns: rows[0]}
	ds.Rows = make([]Row, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		ds.Rows = append(ds.Rows, Row{ID: ulid.Make(), Cells: cells})
	}
	return ds, nil
}

// parseJSON parses an array of flat objects. Columns are the union of all
// object keys in sorted order, since JSON objects carry no key order of
// their own.
func parseJSON(data []byte) (*Dataset, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	seen := make(map[string]struct{})
	var columns []string
	for _, rec := range records {
		for key := range rec {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)

	ds := &Dataset{Columns: columns}
	ds.Rows = make([]Row, 0, len(records))
	for _, rec := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = jsonCellString(rec[col])
		}
		ds.Rows = append(ds.Rows, Row{ID: ulid.Make(), Cells: cells})
	}
	return ds, nil
}

// jsonCellString flattens a decoded JSON value to cell text.
func jsonCellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		// Nested arrays/objects are kept as compact JSON text.
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}

// inferNumericColumns marks a column numeric when it has at least one
// non-empty cell and every non-empty cell parses as a float.
func (ds *Dataset) inferNumericColumns() {
	ds.Numeric = make([]bool, len(ds.Columns))
	for col := range ds.Columns {
		numeric := false
		for _, row := range ds.Rows {
			cell := strings.TrimSpace(row.Cell(col))
			if cell == "" {
				continue
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric = false
				break
			}
			numeric = true
		}
		ds.Numeric[col] = numeric
	}
}

// Merge appends other's rows, mapping cells by column name. Columns unseen
// so far are appended to the end; earlier rows simply lack cells for them.
func (ds *Dataset) Merge(other *Dataset) {
	index := make(map[string]int, len(ds.Columns))
	for i, col := range ds.Columns {
		index[col] = i
	}
	mapping := make([]int, len(other.Columns))
	for i, col := range other.Columns {
		pos, ok := index[col]
		if !ok {
			pos = len(ds.Columns)
			ds.Columns = append(ds.Columns, col)
			index[col] = pos
		}
		mapping[i] = pos
	}

	for _, row := range other.Rows {
		cells := make([]string, len(ds.Columns))
		for i := range row.Cells {
			if i < len(mapping) {
				cells[mapping[i]] = row.Cells[i]
			}
		}
		ds.Rows = append(ds.Rows, Row{ID: row.ID, Cells: cells})
	}
	ds.inferNumericColumns()
}
