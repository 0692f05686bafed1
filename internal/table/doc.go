// Package table implements a virtual-scrolling table engine for very large
// datasets (10^4-10^6 rows). Only the rows intersecting the current viewport
// are materialized for rendering; search, per-column filtering, stable
// sorting, and multi-row selection are layered on top of the windowing logic.
//
// The engine is a single-threaded, synchronous computation driven by the host
// render loop: every operation runs to completion before returning, and each
// stimulus (scroll, query change, dataset replacement, viewport resize,
// selection mutation) recomputes exactly the pipeline stages downstream of it.
// A pure scroll event never re-runs the filter/sort pipeline.
//
// One Engine instance is constructed per table. There is no package-level
// state and no locking, because there is no concurrency.
package table
