package view

import (
	"sort"

	"github.com/kestrelfm/kestrel/internal/fs"
)

// NoIndex marks an unset anchor or caret.
const NoIndex = -1

// Gesture fixes the merge semantics of an interaction at its start; the
// modifier keys held at that moment apply for the whole drag even if they
// change mid-gesture.
type Gesture int

const (
	GestureReplace Gesture = iota
	GestureAdditive
	GestureSubtractive
)

// Selection is the selected-path set plus the anchor/caret pair. Anchor and
// caret are either both NoIndex or both indices that were valid when set;
// consumers revalidate against the live collection before dereferencing.
type Selection struct {
	Selected map[string]struct{}
	Anchor   int
	Caret    int
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{
		Selected: make(map[string]struct{}),
		Anchor:   NoIndex,
		Caret:    NoIndex,
	}
}

// Clear returns the empty selection.
func Clear() Selection {
	return NewSelection()
}

// Has reports whether a path is selected.
func (s Selection) Has(path string) bool {
	_, ok := s.Selected[path]
	return ok
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.Selected) == 0
}

// Paths returns the selected paths in sorted order.
func (s Selection) Paths() []string {
	paths := make([]string, 0, len(s.Selected))
	for p := range s.Selected {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (s Selection) cloneSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Selected))
	for p := range s.Selected {
		out[p] = struct{}{}
	}
	return out
}

// ToggleOne adds or removes a single path without moving anchor or caret.
func (s Selection) ToggleOne(path string) Selection {
	out := Selection{Selected: s.cloneSet(), Anchor: s.Anchor, Caret: s.Caret}
	if _, ok := out.Selected[path]; ok {
		delete(out.Selected, path)
	} else {
		out.Selected[path] = struct{}{}
	}
	return out
}

// Range returns the paths of entries[min..max] inclusive, regardless of
// which bound is numerically smaller. Out-of-range portions are clipped.
func Range(entries []fs.Entry, lo, hi int) map[string]struct{} {
	out := make(map[string]struct{})
	if len(entries) == 0 {
		return out
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi >= len(entries) {
		hi = len(entries) - 1
	}
	for i := lo; i <= hi; i++ {
		out[entries[i].Path] = struct{}{}
	}
	return out
}

// validIndex reports whether idx can be dereferenced against entries.
func validIndex(idx int, entries []fs.Entry) bool {
	return idx >= 0 && idx < len(entries)
}

// Apply merges a computed range into a base selection under the gesture's
// semantics and returns the resulting state.
func Apply(base Selection, g Gesture, rng map[string]struct{}, entries []fs.Entry, anchorHint, caretHint int) Selection {
	switch g {
	case GestureAdditive:
		out := Selection{Selected: base.cloneSet(), Anchor: base.Anchor, Caret: base.Caret}
		for p := range rng {
			out.Selected[p] = struct{}{}
		}
		if out.Anchor == NoIndex || out.Caret == NoIndex {
			out.Anchor, out.Caret = anchorHint, caretHint
		}
		return out

	case GestureSubtractive:
		out := Selection{Selected: base.cloneSet(), Anchor: base.Anchor, Caret: base.Caret}
		for p := range rng {
			delete(out.Selected, p)
		}
		// Anchor/caret survive only while both still point at selected paths.
		keep := validIndex(out.Anchor, entries) && validIndex(out.Caret, entries) &&
			out.Has(entries[out.Anchor].Path) && out.Has(entries[out.Caret].Path)
		if !keep {
			out.Anchor, out.Caret = NoIndex, NoIndex
		}
		return out

	default: // GestureReplace
		out := Selection{Selected: make(map[string]struct{}, len(rng)), Anchor: anchorHint, Caret: caretHint}
		for p := range rng {
			out.Selected[p] = struct{}{}
		}
		return out
	}
}

// Retain intersects the selection with a fresh entry collection, dropping
// paths that no longer exist and resetting anchor/caret when they no longer
// point at selected entries. Used after silent reloads.
func Retain(s Selection, entries []fs.Entry) Selection {
	live := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		live[e.Path] = struct{}{}
	}

	out := NewSelection()
	for p := range s.Selected {
		if _, ok := live[p]; ok {
			out.Selected[p] = struct{}{}
		}
	}

	if validIndex(s.Anchor, entries) && validIndex(s.Caret, entries) &&
		out.Has(entries[s.Anchor].Path) && out.Has(entries[s.Caret].Path) {
		out.Anchor, out.Caret = s.Anchor, s.Caret
	}
	return out
}
