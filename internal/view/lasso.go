package view

import (
	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
)

// Lasso is the pointer-drag rectangular selector. It runs idle -> dragging ->
// idle; the gesture and base selection are fixed at Start and the rectangle
// is tracked in content space so scrolling mid-drag does not shift it.
type Lasso struct {
	dragging bool
	gesture  Gesture
	base     Selection

	originX int // content-space
	originY int
	didDrag bool
}

// Dragging reports whether a drag is in progress.
func (l *Lasso) Dragging() bool {
	return l.dragging
}

// Start begins a drag at container-local (x, y). Non-primary buttons are
// ignored. The base selection is what additive/subtractive gestures merge
// into.
func (l *Lasso) Start(x, y int, primary bool, scroll int, g Gesture, base Selection) bool {
	if !primary {
		return false
	}
	l.dragging = true
	l.gesture = g
	l.base = Selection{Selected: base.cloneSet(), Anchor: base.Anchor, Caret: base.Caret}
	l.originX = x
	l.originY = y + scroll
	l.didDrag = false
	return true
}

// Move extends the drag to container-local (x, y) at the given scroll offset
// and returns the selection the drag currently describes. The point is
// clamped to the container's content box before being lifted into content
// space; geometry is sampled at each call, so mid-scroll jitter resolves on
// the next move.
func (l *Lasso) Move(x, y, scroll int, vp Viewport, mode layout.Mode, cfg layout.Config, entries []fs.Entry) (Selection, bool) {
	if !l.dragging {
		return Selection{}, false
	}

	x = clampInt(x, 0, vp.Width)
	y = clampInt(y, 0, vp.Height)
	cy := y + scroll

	if x != l.originX || cy != l.originY {
		l.didDrag = true
	}

	rect := Rect{X0: l.originX, Y0: l.originY, X1: x, Y1: cy}
	lo, hi, ok := IndexRangeForRect(rect, len(entries), vp, mode, cfg)
	if !ok {
		// Rectangle misses the content entirely.
		if l.gesture == GestureReplace {
			return Apply(l.base, GestureReplace, nil, entries, NoIndex, NoIndex), true
		}
		return Selection{Selected: l.base.cloneSet(), Anchor: l.base.Anchor, Caret: l.base.Caret}, true
	}

	anchorHint, caretHint := lo, hi
	if cy < l.originY {
		anchorHint, caretHint = hi, lo
	}

	rng := Range(entries, lo, hi)
	return Apply(l.base, l.gesture, rng, entries, anchorHint, caretHint), true
}

// End finishes the drag and reports whether any net movement occurred, so
// the caller can tell a drag from a plain click on empty space. It is also
// the release-anywhere path: callers invoke it from a document-level pointer
// release, not just releases inside the container.
func (l *Lasso) End() bool {
	if !l.dragging {
		return false
	}
	l.dragging = false
	l.base = Selection{}
	return l.didDrag
}
