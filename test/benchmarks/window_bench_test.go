package benchmarks_test

import (
	"fmt"
	"testing"

	"github.com/gridscope/gridscope/internal/table"
)

type record struct {
	Name string
	Size float64
}

func benchEngine(b *testing.B, rowCount int, opts ...table.Option[record]) *table.Engine[record] {
	b.Helper()

	data := make([]record, rowCount)
	for i := range data {
		data[i] = record{
			Name: fmt.Sprintf("record-%06d", i),
			Size: float64(20 + i%5*10),
		}
	}

	name := table.NewColumn("name", "Name", func(r record) any { return r.Name })
	size := table.NewColumn("size", "Size", func(r record) any { return r.Size })

	base := []table.Option[record]{
		table.WithData(data),
		table.WithColumns([]table.Column[record]{name, size}),
		table.WithHeight[record](600),
		table.WithRowHeight[record](52),
	}
	engine, err := table.New(append(base, opts...)...)
	if err != nil {
		b.Fatal(err)
	}
	return engine
}

// BenchmarkWindow_Uniform measures the constant-time windowing path on a
// large uniform dataset.
func BenchmarkWindow_Uniform(b *testing.B) {
	engine := benchEngine(b, 100_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.SetScrollTop(float64(i%100_000) * 52)
		if w := engine.Window(); len(w.Items) == 0 {
			b.Fatal("empty window")
		}
	}
}

// BenchmarkWindow_VariableSizes measures the prefix-sum path with a per-row
// size function.
func BenchmarkWindow_VariableSizes(b *testing.B) {
	engine := benchEngine(b, 100_000,
		table.WithRowSize[record](func(_ int, r record) float64 { return r.Size }),
	)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.SetScrollTop(float64(i % 1_000_000))
		if w := engine.Window(); w.TotalSize == 0 {
			b.Fatal("empty extent")
		}
	}
}

// BenchmarkQuery_SearchSort measures a full recompute of the query
// pipeline.
func BenchmarkQuery_SearchSort(b *testing.B) {
	engine := benchEngine(b, 100_000)
	engine.SetSort("size", table.SortDesc)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Alternate terms so the memoized sequence is rebuilt every time.
		engine.SetSearch(fmt.Sprintf("%d", i%10))
		if engine.Len() == 0 {
			b.Fatal("search matched nothing")
		}
	}
}
