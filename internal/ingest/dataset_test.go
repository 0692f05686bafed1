package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridscope/gridscope/internal/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoad_CSV tests CSV loading with header, rows, ids, and numeric
// inference.
func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "projects.csv", "name,status,budget\nApollo,active,300\nBorealis,done,100\n")

	ds, err := Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "status", "budget"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "Apollo", ds.Rows[0].Cell(0))
	assert.Equal(t, "100", ds.Rows[1].Cell(2))
	assert.Equal(t, []bool{false, false, true}, ds.Numeric)
	assert.NotEqual(t, ds.Rows[0].ID, ds.Rows[1].ID, "rows get distinct ids")
}

// TestLoad_JSON tests JSON array loading with sorted union columns.
func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "projects.json",
		`[{"name":"Apollo","budget":300},{"name":"Borealis","budget":100,"status":"done"}]`)

	ds, err := Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"budget", "name", "status"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "300", ds.Rows[0].Cell(0))
	assert.Equal(t, "", ds.Rows[0].Cell(2), "missing keys become empty cells")
	assert.Equal(t, "done", ds.Rows[1].Cell(2))
	assert.True(t, ds.Numeric[0])
}

// TestLoad_Errors tests unsupported extensions and empty files.
func TestLoad_Errors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "data.xml", "<rows/>")
		_, err := Load(context.Background(), path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("empty json array", func(t *testing.T) {
		path := writeFile(t, "data.json", "[]")
		_, err := Load(context.Background(), path)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

// TestLoadAll_MergeByColumnName tests concurrent multi-file loading and
// column-name merging.
func TestLoadAll_MergeByColumnName(t *testing.T) {
	first := writeFile(t, "a.csv", "name,budget\nApollo,300\n")
	second := writeFile(t, "b.csv", "budget,name,owner\n100,Borealis,ops\n")

	ds, err := LoadAll(context.Background(), []string{first, second})

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "budget", "owner"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "Borealis", ds.Rows[1].Cell(0), "cells are remapped by column name")
	assert.Equal(t, "100", ds.Rows[1].Cell(1))
	assert.Equal(t, "", ds.Rows[0].Cell(2), "earlier rows lack late-appearing columns")
}

// TestLoadAll_NoFiles tests the empty-argument error.
func TestLoadAll_NoFiles(t *testing.T) {
	_, err := LoadAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFiles)
}

// TestBuildColumns tests accessor typing and layout heuristics.
func TestBuildColumns(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"Name", "Budget"},
		Numeric: []bool{false, true},
		Rows: []Row{
			{Cells: []string{"Apollo", "300"}},
			{Cells: []string{"Borealis", ""}},
		},
	}

	cols := BuildColumns(ds)

	require.Len(t, cols, 2)
	assert.Equal(t, "name_0", cols[0].ID)
	assert.Equal(t, "budget_1", cols[1].ID)
	assert.Equal(t, table.AlignRight, cols[1].Align)

	assert.Equal(t, "Apollo", cols[0].Accessor(ds.Rows[0]))
	assert.InDelta(t, 300.0, cols[1].Accessor(ds.Rows[0]).(float64), 1e-9)
	assert.Nil(t, cols[1].Accessor(ds.Rows[1]), "empty numeric cells yield nil")
}

// TestNumberRenderer tests grouping separators and fraction handling.
func TestNumberRenderer(t *testing.T) {
	render := NumberRenderer()
	var row Row

	assert.Equal(t, "1,234,567", render(1234567.0, row, 0))
	assert.Equal(t, "12.5", render(12.5, row, 0))
	assert.Equal(t, "", render(nil, row, 0))
	assert.Equal(t, "n/a", render("n/a", row, 0), "unparsed cells pass through")
}

// TestBuildColumns_EngineIntegration tests that derived columns drive a
// numeric engine sort.
func TestBuildColumns_EngineIntegration(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"name", "budget"},
		Numeric: []bool{false, true},
		Rows: []Row{
			{Cells: []string{"a", "300"}},
			{Cells: []string{"b", "100"}},
			{Cells: []string{"c", "200"}},
		},
	}

	e, err := table.New(
		table.WithData(ds.Rows),
		table.WithColumns(BuildColumns(ds)),
	)
	require.NoError(t, err)

	e.SetSort("budget_1", table.SortAsc)
	rows := e.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "100", rows[0].Cell(1))
	assert.Equal(t, "300", rows[2].Cell(1))
}
