package view

import (
	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
)

// Key is the subset of keyboard input the navigator understands.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyEscape
	KeyEnter
)

// KeyResult describes what a key did. Caret is the index to bring into view
// (NoIndex when nothing moved); OpenIndex is the entry to activate on Enter.
type KeyResult struct {
	Selection Selection
	Caret     int
	OpenIndex int
	Handled   bool
}

// HandleKey translates a key event into a new selection state. Movement is
// pure index arithmetic: in grid mode Up/Down stride by the column count and
// Left/Right by one; list mode ignores Left/Right. Deltas clamp to the
// collection bounds and never wrap.
func HandleKey(sel Selection, key Key, shift bool, entries []fs.Entry, mode layout.Mode, columns int) KeyResult {
	res := KeyResult{Selection: sel, Caret: NoIndex, OpenIndex: NoIndex}

	switch key {
	case KeyEscape:
		res.Selection = Clear()
		res.Handled = true
		return res

	case KeyEnter:
		res.Handled = true
		if validIndex(sel.Caret, entries) {
			res.OpenIndex = sel.Caret
			return res
		}
		// No caret: open the first selected entry in traversal order.
		for i, e := range entries {
			if sel.Has(e.Path) {
				res.OpenIndex = i
				return res
			}
		}
		return res
	}

	if len(entries) == 0 {
		return res
	}

	if columns < 1 {
		columns = 1
	}

	caret := sel.Caret
	if !validIndex(caret, entries) {
		caret = NoIndex
	}

	target := NoIndex
	switch key {
	case KeyUp:
		if caret == NoIndex {
			target = len(entries) - 1
		} else if mode == layout.Grid {
			target = caret - columns
		} else {
			target = caret - 1
		}
	case KeyDown:
		if caret == NoIndex {
			target = 0
		} else if mode == layout.Grid {
			target = caret + columns
		} else {
			target = caret + 1
		}
	case KeyLeft:
		if mode != layout.Grid {
			return res // single column, not handled
		}
		if caret == NoIndex {
			target = 0
		} else {
			target = caret - 1
		}
	case KeyRight:
		if mode != layout.Grid {
			return res
		}
		if caret == NoIndex {
			target = 0
		} else {
			target = caret + 1
		}
	case KeyHome:
		target = 0
	case KeyEnd:
		target = len(entries) - 1
	default:
		return res
	}

	target = clampInt(target, 0, len(entries)-1)
	res.Handled = true

	if target == caret {
		return res // at the boundary already
	}

	if shift {
		// Anchor is fixed at the start of the shift-sequence: the existing
		// anchor, else the pre-move caret, else the landing index.
		anchor := sel.Anchor
		if !validIndex(anchor, entries) {
			anchor = caret
		}
		if anchor == NoIndex {
			anchor = target
		}
		res.Selection = Selection{
			Selected: Range(entries, anchor, target),
			Anchor:   anchor,
			Caret:    target,
		}
	} else {
		res.Selection = Selection{
			Selected: map[string]struct{}{entries[target].Path: {}},
			Anchor:   target,
			Caret:    target,
		}
	}

	res.Caret = target
	return res
}
