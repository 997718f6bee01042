// Package view implements the interactive core of the file manager surface:
// viewport virtualization, the selection model and its per-path memory, the
// lasso selector, and the keyboard navigator. Everything here is synchronous
// and pure state transition; pixels come in, indices come out.
package view

import (
	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
)

// Viewport is the measured size of the scroll container.
type Viewport struct {
	Width  int
	Height int
}

// Measured reports whether the container has a usable size yet. An
// unmeasured container keeps the previous window to avoid flicker.
func (v Viewport) Measured() bool {
	return v.Width > 0 && v.Height > 0
}

// Window is the slice of the entry collection that actually gets rendered.
// Visible is exactly entries[Start : Start+len(Visible)], contiguous.
type Window struct {
	Start        int
	OffsetPixels int // content-space top of the first visible row
	TotalPixels  int // full scrollable extent
	Visible      []fs.Entry
}

// Recompute derives the virtualization window for the current scroll offset.
// The second return is false when the viewport is unmeasured, in which case
// the caller keeps its prior window.
func Recompute(entries []fs.Entry, scroll int, vp Viewport, mode layout.Mode, cfg layout.Config) (Window, bool) {
	if !vp.Measured() {
		return Window{}, false
	}

	n := len(entries)
	if n == 0 {
		return Window{}, true
	}

	stride := cfg.Stride(mode)
	overscan := cfg.ClampedOverscan()
	if scroll < 0 {
		scroll = 0
	}

	columns := 1
	rows := n
	if mode == layout.Grid {
		columns = cfg.Columns(vp.Width)
		rows = layout.Rows(n, columns)
	}
	total := rows * stride

	startRow := scroll/stride - overscan
	if startRow < 0 {
		startRow = 0
	}
	if startRow >= rows {
		startRow = rows - 1
	}

	viewRows := (vp.Height + stride - 1) / stride
	endRow := startRow + viewRows + 2*overscan
	if endRow > rows {
		endRow = rows
	}

	start := startRow * columns
	end := endRow * columns
	if end > n {
		end = n
	}

	return Window{
		Start:        start,
		OffsetPixels: startRow * stride,
		TotalPixels:  total,
		Visible:      entries[start:end],
	}, true
}

// rowOf returns the row an index lives on for the given mode.
func rowOf(index int, vp Viewport, mode layout.Mode, cfg layout.Config) int {
	if mode == layout.Grid {
		return index / cfg.Columns(vp.Width)
	}
	return index
}

// EnsureVisible returns the scroll offset that brings index fully into view:
// top-aligned when it sits above the viewport, bottom-aligned when below,
// unchanged when already visible. The second return reports whether the
// offset moved.
func EnsureVisible(index, scroll int, vp Viewport, mode layout.Mode, cfg layout.Config, n int) (int, bool) {
	if n == 0 || index < 0 || index >= n || !vp.Measured() {
		return scroll, false
	}

	stride := cfg.Stride(mode)
	top := rowOf(index, vp, mode, cfg) * stride
	bottom := top + stride

	if top < scroll {
		return top, true
	}
	if bottom > scroll+vp.Height {
		return bottom - vp.Height, true
	}
	return scroll, false
}

// CenterOn returns the scroll offset that centers index in the viewport,
// clamped to the scrollable extent.
func CenterOn(index int, vp Viewport, mode layout.Mode, cfg layout.Config, n int) int {
	if n == 0 || !vp.Measured() {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}

	stride := cfg.Stride(mode)
	columns := 1
	rows := n
	if mode == layout.Grid {
		columns = cfg.Columns(vp.Width)
		rows = layout.Rows(n, columns)
	}

	scroll := rowOf(index, vp, mode, cfg)*stride - (vp.Height-stride)/2
	return ClampScroll(scroll, rows*stride, vp.Height)
}

// ClampScroll bounds a scroll offset to [0, total-viewportHeight].
func ClampScroll(scroll, total, viewportHeight int) int {
	max := total - viewportHeight
	if max < 0 {
		max = 0
	}
	if scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// Rect is a rectangle in content-space coordinates (scroll already applied to
// the vertical component).
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// normalized orders the rectangle's corners.
func (r Rect) normalized() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// IndexRangeForRect hit-tests a content-space rectangle against the layout
// geometry and returns the inclusive contiguous index range it covers. ok is
// false when the rectangle misses the content extent vertically or the
// collection is empty.
func IndexRangeForRect(r Rect, n int, vp Viewport, mode layout.Mode, cfg layout.Config) (lo, hi int, ok bool) {
	if n == 0 {
		return 0, 0, false
	}

	r = r.normalized()
	stride := cfg.Stride(mode)

	columns := 1
	rows := n
	if mode == layout.Grid {
		columns = cfg.Columns(vp.Width)
		rows = layout.Rows(n, columns)
	}
	total := rows * stride

	if r.Y1 < 0 || r.Y0 >= total {
		return 0, 0, false
	}

	rowLo := clampInt(r.Y0/stride, 0, rows-1)
	rowHi := clampInt(r.Y1/stride, 0, rows-1)

	if mode == layout.List {
		return rowLo, rowHi, true
	}

	colLo := clampInt(columnAt(r.X0, columns, cfg), 0, columns-1)
	colHi := clampInt(columnAt(r.X1, columns, cfg), 0, columns-1)

	lo = clampInt(rowLo*columns+colLo, 0, n-1)
	hi = clampInt(rowHi*columns+colHi, 0, n-1)
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

func columnAt(x int, columns int, cfg layout.Config) int {
	cell := cfg.CardWidth + cfg.Gap
	if cell < 1 {
		cell = 1
	}
	return (x - cfg.Padding) / cell
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
