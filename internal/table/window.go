package table

import (
	"math"
	"sort"
)

// VirtualItem describes one row that must be rendered: its index in the
// current sequence and its pixel span. End = Start + Size, and items produced
// together are contiguous and ascending in Index.
type VirtualItem struct {
	Index int
	Start float64
	Size  float64
	End   float64
}

/// Window is the result of a windowing computation: the contiguous run of
// items to render (visible range expanded by overscan), the total scrollable
// extent, and the strictly visible index bounds before overscan expansion.
type Window struct {
	Items      []VirtualItem
	TotalSize  float64
	StartIndex int
	EndIndex   int
}

// SizeFunc reports the size of the item at the given index. It must return a
// positive value for every index in range.
type SizeFunc func(index int) float64

// computeUniformWindow is the constant-time windowing path for the common
// case of a single shared row size.
func computeUniformWindow(count int, size, containerHeight, scrollTop float64, overscan int) Window {
	if count == 0 || size <= 0 {
		return Window{EndIndex: -1}
	}
	total := float64(count) * size
	if containerHeight <= 0 {
		// Degenerate viewport: report the extent but render nothing.
		return Window{TotalSize: total, EndIndex: -1}
	}
	scrollTop = clampScroll(scrollTop, total, containerHeight)

	// First row whose bottom edge is below the top of the viewport, and last
	// row whose top edge is above the bottom of the viewport.
	start := int(math.Floor(scrollTop / size))
	end := int(math.Ceil((scrollTop+containerHeight)/size)) - 1
	start = clampIndex(start, count)
	end = clampIndex(end, count)

	rangeStart := clampIndex(start-overscan, count)
	rangeEnd := clampIndex(end+overscan, count)

	items := make([]VirtualItem, 0, rangeEnd-rangeStart+1)
	for i := rangeStart; i <= rangeEnd; i++ {
		off := float64(i) * size
		items = append(items, VirtualItem{Index: i, Start: off, Size: size, End: off + size})
	}
	return Window{Items: items, TotalSize: total, StartIndex: start, EndIndex: end}
}

// offsetIndex is a monotonic prefix-sum over item sizes supporting O(log n)
// boundary lookups. It is rebuilt only when the underlying sequence changes,
// not on every scroll event.
type offsetIndex struct {
	// offsets[i] is the cumulative size of items [0, i); len(offsets) is
	// count+1 and offsets[count] is the total size.
	offsets []float64
}

// rebuild recomputes the prefix sums for count items sized by size.
func (ox *offsetIndex) rebuild(count int, size SizeFunc) {
	if cap(ox.offsets) < count+1 {
		ox.offsets = make([]float64, count+1)
	}
	ox.offsets = ox.offsets[:count+1]
	ox.offsets[0] = 0
	for i := 0; i < count; i++ {
		ox.offsets[i+1] = ox.offsets[i] + size(i)
	}
}

// total returns the full scrollable extent.
func (ox *offsetIndex) total() float64 {
	if len(ox.offsets) == 0 {
		return 0
	}
	return ox.offsets[len(ox.offsets)-1]
}

// window computes the visible range against the prefix sums.
func (ox *offsetIndex) window(containerHeight, scrollTop float64, overscan int) Window {
	count := len(ox.offsets) - 1
	if count <= 0 {
		return Window{EndIndex: -1}
	}
	total := ox.total()
	if containerHeight <= 0 {
		return Window{TotalSize: total, EndIndex: -1}
	}
	scrollTop = clampScroll(scrollTop, total, containerHeight)
	viewBottom := scrollTop + containerHeight

	// First index whose end offset is past scrollTop.
	start := sort.Search(count, func(i int) bool {
		return ox.offsets[i+1] > scrollTop
	})
	// First index whose start offset reaches the viewport bottom; the row
	// before it is the last visible one.
	end := sort.Search(count, func(i int) bool {
		return ox.offsets[i] >= viewBottom
	}) - 1
	start = clampIndex(start, count)
	end = clampIndex(end, count)

	rangeStart := clampIndex(start-overscan, count)
	rangeEnd := clampIndex(end+overscan, count)

	items := make([]VirtualItem, 0, rangeEnd-rangeStart+1)
	for i := rangeStart; i <= rangeEnd; i++ {
		items = append(items, VirtualItem{
			Index: i,
			Start: ox.offsets[i],
			Size:  ox.offsets[i+1] - ox.offsets[i],
			End:   ox.offsets[i+1],
		})
	}
	return Window{Items: items, TotalSize: total, StartIndex: start, EndIndex: end}
}

// clampScroll bounds a scroll offset to [0, total-containerHeight]. Negative
// input and overscroll past the end both yield the nearest valid window
// instead of an error.
func clampScroll(scrollTop, total, containerHeight float64) float64 {
	maxScroll := total - containerHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scrollTop > maxScroll {
		scrollTop = maxScroll
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	return scrollTop
}

// clampIndex bounds an index to [0, count-1].
func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i > count-1 {
		return count - 1
	}
	return i
}
