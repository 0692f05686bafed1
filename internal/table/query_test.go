package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type project struct {
	Name   string
	Status string
	Budget float64
}

func projectColumns() []Column[project] {
	return []Column[project]{
		NewColumn("name", "Name", func(p project) any { return p.Name }),
		NewColumn("status", "Status", func(p project) any { return p.Status }),
		NewColumn("budget", "Budget", func(p project) any { return p.Budget }),
	}
}

// TestApplySearch_CaseInsensitiveSubstring tests the free-text search stage.
func TestApplySearch_CaseInsensitiveSubstring(t *testing.T) {
	data := []project{
		{Name: "Apple"},
		{Name: "banana"},
		{Name: "Cherry"},
	}

	out := applySearch(data, projectColumns(), "an")

	require.Len(t, out, 1)
	assert.Equal(t, "banana", out[0].Name)
}

// TestApplySearch_EmptyTermIsIdentity tests that an empty search term keeps
// the dataset in its original order.
func TestApplySearch_EmptyTermIsIdentity(t *testing.T) {
	data := []project{{Name: "c"}, {Name: "a"}, {Name: "b"}}

	out := applySearch(data, projectColumns(), "")

	assert.Equal(t, data, out)
}

// TestApplySearch_MatchesAnyColumn tests that a term matching any column
// keeps the row.
func TestApplySearch_MatchesAnyColumn(t *testing.T) {
	data := []project{
		{Name: "alpha", Status: "Active"},
		{Name: "beta", Status: "archived"},
	}

	out := applySearch(data, projectColumns(), "ARCH")

	require.Len(t, out, 1)
	assert.Equal(t, "beta", out[0].Name)
}

// TestApplyFilters_ComposeByAND tests that column filters restrict
// conjunctively and compose with search.
func TestApplyFilters_ComposeByAND(t *testing.T) {
	data := []project{
		{Name: "alpha", Status: "active"},
		{Name: "alpine", Status: "done"},
		{Name: "beta", Status: "active"},
	}
	cols := projectColumns()

	searched := applySearch(data, cols, "alp")
	filtered := applyFilters(searched, cols, map[string]string{"status": "act"})

	require.Len(t, filtered, 1)
	assert.Equal(t, "alpha", filtered[0].Name)

	// Intersection property: the combined result equals applying each
	// restriction independently and intersecting.
	onlyFilter := applyFilters(data, cols, map[string]string{"status": "act"})
	assert.Subset(t, namesOf(searched), namesOf(filtered))
	assert.Subset(t, namesOf(onlyFilter), namesOf(filtered))
}

// TestApplyFilters_UnknownColumnIgnored tests that filters on undeclared
// columns do not restrict the result.
func TestApplyFilters_UnknownColumnIgnored(t *testing.T) {
	data := []project{{Name: "alpha"}, {Name: "beta"}}

	out := applyFilters(data, projectColumns(), map[string]string{"ghost": "x"})

	assert.Len(t, out, 2)
}

// TestApplySort_NumericAscendingDescending tests numeric ordering on the
// budget column.
func TestApplySort_NumericAscendingDescending(t *testing.T) {
	data := []project{
		{Name: "a", Budget: 300},
		{Name: "b", Budget: 100},
		{Name: "c", Budget: 200},
	}
	cols := projectColumns()

	asc := applySort(data, cols, SortState{Key: "budget", Direction: SortAsc})
	require.Len(t, asc, 3)
	assert.Equal(t, []float64{100, 200, 300}, budgetsOf(asc))

	desc := applySort(data, cols, SortState{Key: "budget", Direction: SortDesc})
	assert.Equal(t, []float64{300, 200, 100}, budgetsOf(desc))

	// Input order untouched.
	assert.Equal(t, []float64{300, 100, 200}, budgetsOf(data))
}

// TestApplySort_Stability tests that rows with equal keys retain their
// pre-sort relative order in both directions.
func TestApplySort_Stability(t *testing.T) {
	data := []project{
		{Name: "first", Status: "b"},
		{Name: "second", Status: "a"},
		{Name: "third", Status: "b"},
		{Name: "fourth", Status: "a"},
	}
	cols := projectColumns()

	asc := applySort(data, cols, SortState{Key: "status", Direction: SortAsc})
	assert.Equal(t, []string{"second", "fourth", "first", "third"}, namesOf(asc))

	// Descending inverts the comparator result, not the equality branch:
	// equal rows still appear in input order.
	desc := applySort(data, cols, SortState{Key: "status", Direction: SortDesc})
	assert.Equal(t, []string{"first", "third", "second", "fourth"}, namesOf(desc))
}

// TestApplySort_CaseInsensitiveStrings tests string comparison of mixed-case
// values.
func TestApplySort_CaseInsensitiveStrings(t *testing.T) {
	data := []project{
		{Name: "cherry"},
		{Name: "Apple"},
		{Name: "banana"},
	}

	out := applySort(data, projectColumns(), SortState{Key: "name", Direction: SortAsc})

	assert.Equal(t, []string{"Apple", "banana", "cherry"}, namesOf(out))
}

// TestApplySort_NonSortableColumnIgnored tests that sort requests against a
// non-sortable column leave the order unchanged.
func TestApplySort_NonSortableColumnIgnored(t *testing.T) {
	cols := projectColumns()
	cols[0].Sortable = false
	data := []project{{Name: "c"}, {Name: "a"}}

	out := applySort(data, cols, SortState{Key: "name", Direction: SortAsc})

	assert.Equal(t, []string{"c", "a"}, namesOf(out))
}

// TestCompareValues tests the comparator's numeric and string branches.
func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{name: "both numeric", a: 2, b: 10, want: -1},
		{name: "numeric equality", a: 3.0, b: 3, want: 0},
		{name: "strings case-insensitive", a: "Beta", b: "alpha", want: 1},
		{name: "mixed types fall back to strings", a: 10, b: "9", want: -1},
		{name: "nil sorts before content", a: nil, b: "x", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareValues(tt.a, tt.b))
		})
	}
}

// TestCellValue_PanickingAccessor tests the malformed-accessor guard.
func TestCellValue_PanickingAccessor(t *testing.T) {
	col := NewColumn("boom", "Boom", func(p project) any {
		panic("accessor exploded")
	})

	assert.Nil(t, cellValue(col, project{}))
	assert.Equal(t, "", formatValue(cellValue(col, project{})))
}

// TestFormatValue tests default stringification.
func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "hello", formatValue("hello"))
	assert.Equal(t, "3.5", formatValue(3.5))
	assert.Equal(t, "42", formatValue(42))
	assert.Equal(t, "true", formatValue(true))
}

func namesOf(rows []project) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func budgetsOf(rows []project) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = r.Budget
	}
	return out
}
