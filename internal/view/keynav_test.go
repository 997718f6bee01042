package view

import (
	"testing"

	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
)

func caretAt(entries []fs.Entry, i int) Selection {
	sel := NewSelection()
	sel.Selected[entries[i].Path] = struct{}{}
	sel.Anchor, sel.Caret = i, i
	return sel
}

func TestListArrowDown(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(caretAt(entries, 0), KeyDown, false, entries, layout.List, 1)

	if !res.Handled {
		t.Fatal("Expected the key to be handled")
	}
	if res.Caret != 1 {
		t.Errorf("Expected caret to move to 1, got %d", res.Caret)
	}
	if len(res.Selection.Selected) != 1 || !res.Selection.Has(entries[1].Path) {
		t.Errorf("Expected a singleton selection at index 1, got %v", res.Selection.Paths())
	}
	if res.Selection.Anchor != 1 || res.Selection.Caret != 1 {
		t.Errorf("Expected anchor and caret collapsed to 1, got %d/%d",
			res.Selection.Anchor, res.Selection.Caret)
	}
}

func TestGridArrowDownStridesByColumns(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(caretAt(entries, 0), KeyDown, false, entries, layout.Grid, 3)

	if res.Caret != 3 {
		t.Errorf("Expected caret to land on 3 in a 3-column grid, got %d", res.Caret)
	}

	res = HandleKey(caretAt(entries, 3), KeyUp, false, entries, layout.Grid, 3)
	if res.Caret != 0 {
		t.Errorf("Expected caret to move back to 0, got %d", res.Caret)
	}
}

func TestGridArrowDownClampsAtBottom(t *testing.T) {
	entries := makeEntries(10) // 4 rows of 3, last row has one card
	res := HandleKey(caretAt(entries, 8), KeyDown, false, entries, layout.Grid, 3)

	// 8 + 3 = 11 clamps to the last index rather than wrapping.
	if res.Caret != 9 {
		t.Errorf("Expected caret to clamp to 9, got %d", res.Caret)
	}
}

func TestArrowUpAtTopIsNoOp(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(caretAt(entries, 0), KeyUp, false, entries, layout.List, 1)

	if !res.Handled {
		t.Error("Expected the key to be consumed at the boundary")
	}
	if res.Caret != NoIndex {
		t.Errorf("Expected no caret movement at the boundary, got %d", res.Caret)
	}
	if !res.Selection.Has(entries[0].Path) {
		t.Error("Expected the selection to stay put")
	}
}

func TestListIgnoresHorizontalKeys(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(caretAt(entries, 5), KeyLeft, false, entries, layout.List, 1)
	if res.Handled {
		t.Error("Expected Left to fall through in list mode")
	}
	res = HandleKey(caretAt(entries, 5), KeyRight, false, entries, layout.List, 1)
	if res.Handled {
		t.Error("Expected Right to fall through in list mode")
	}
}

func TestGridHorizontalKeys(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(caretAt(entries, 4), KeyRight, false, entries, layout.Grid, 3)
	if res.Caret != 5 {
		t.Errorf("Expected caret 5, got %d", res.Caret)
	}
	res = HandleKey(caretAt(entries, 4), KeyLeft, false, entries, layout.Grid, 3)
	if res.Caret != 3 {
		t.Errorf("Expected caret 3, got %d", res.Caret)
	}
}

func TestNoCaretDownSelectsFirst(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(NewSelection(), KeyDown, false, entries, layout.List, 1)
	if res.Caret != 0 {
		t.Errorf("Expected Down with no caret to land on 0, got %d", res.Caret)
	}

	res = HandleKey(NewSelection(), KeyUp, false, entries, layout.List, 1)
	if res.Caret != 9 {
		t.Errorf("Expected Up with no caret to land on the last index, got %d", res.Caret)
	}
}

func TestShiftExtendsFromAnchor(t *testing.T) {
	entries := makeEntries(10)
	sel := Selection{
		Selected: map[string]struct{}{entries[0].Path: {}},
		Anchor:   NoIndex,
		Caret:    0,
	}

	res := HandleKey(sel, KeyDown, true, entries, layout.Grid, 3)
	if len(res.Selection.Selected) != 4 {
		t.Errorf("Expected 4 selected paths, got %d", len(res.Selection.Selected))
	}
	for i := 0; i <= 3; i++ {
		if !res.Selection.Has(entries[i].Path) {
			t.Errorf("Expected index %d in the shift range", i)
		}
	}
	if res.Selection.Anchor != 0 || res.Selection.Caret != 3 {
		t.Errorf("Expected anchor 0 caret 3, got %d/%d",
			res.Selection.Anchor, res.Selection.Caret)
	}
}

func TestShiftSequenceKeepsAnchor(t *testing.T) {
	entries := makeEntries(10)

	res := HandleKey(caretAt(entries, 2), KeyDown, true, entries, layout.List, 1)
	if res.Selection.Anchor != 2 || res.Selection.Caret != 3 {
		t.Fatalf("Expected anchor 2 caret 3, got %d/%d", res.Selection.Anchor, res.Selection.Caret)
	}

	res = HandleKey(res.Selection, KeyDown, true, entries, layout.List, 1)
	if res.Selection.Anchor != 2 || res.Selection.Caret != 4 {
		t.Errorf("Expected anchor fixed at 2, got %d/%d", res.Selection.Anchor, res.Selection.Caret)
	}
	if len(res.Selection.Selected) != 3 {
		t.Errorf("Expected 3 selected paths, got %d", len(res.Selection.Selected))
	}

	// Reversing direction shrinks the range around the same anchor.
	res = HandleKey(res.Selection, KeyUp, true, entries, layout.List, 1)
	if res.Selection.Anchor != 2 || res.Selection.Caret != 3 {
		t.Errorf("Expected anchor 2 caret 3 after reversing, got %d/%d",
			res.Selection.Anchor, res.Selection.Caret)
	}
	if len(res.Selection.Selected) != 2 {
		t.Errorf("Expected 2 selected paths after reversing, got %d", len(res.Selection.Selected))
	}
}

func TestHomeEnd(t *testing.T) {
	entries := makeEntries(10)
	res := HandleKey(caretAt(entries, 5), KeyEnd, false, entries, layout.List, 1)
	if res.Caret != 9 {
		t.Errorf("Expected End to land on 9, got %d", res.Caret)
	}

	res = HandleKey(caretAt(entries, 5), KeyHome, true, entries, layout.List, 1)
	if res.Selection.Anchor != 5 || res.Selection.Caret != 0 {
		t.Errorf("Expected shift+Home to range 5..0, got %d/%d",
			res.Selection.Anchor, res.Selection.Caret)
	}
	if len(res.Selection.Selected) != 6 {
		t.Errorf("Expected 6 selected paths, got %d", len(res.Selection.Selected))
	}
}

func TestEscapeClears(t *testing.T) {
	entries := makeEntries(5)
	res := HandleKey(caretAt(entries, 2), KeyEscape, false, entries, layout.List, 1)
	if !res.Handled {
		t.Error("Expected Escape to be handled")
	}
	if !res.Selection.Empty() {
		t.Error("Expected an empty selection after Escape")
	}
	if res.Selection.Anchor != NoIndex || res.Selection.Caret != NoIndex {
		t.Errorf("Expected anchor/caret reset, got %d/%d",
			res.Selection.Anchor, res.Selection.Caret)
	}
}

func TestEnterOpensCaret(t *testing.T) {
	entries := makeEntries(5)
	res := HandleKey(caretAt(entries, 3), KeyEnter, false, entries, layout.List, 1)
	if res.OpenIndex != 3 {
		t.Errorf("Expected Enter to open index 3, got %d", res.OpenIndex)
	}
}

func TestEnterWithoutCaretOpensFirstSelected(t *testing.T) {
	entries := makeEntries(5)
	sel := NewSelection()
	sel.Selected[entries[4].Path] = struct{}{}
	sel.Selected[entries[2].Path] = struct{}{}

	res := HandleKey(sel, KeyEnter, false, entries, layout.List, 1)
	if res.OpenIndex != 2 {
		t.Errorf("Expected the first selected entry in traversal order, got %d", res.OpenIndex)
	}

	res = HandleKey(NewSelection(), KeyEnter, false, entries, layout.List, 1)
	if res.OpenIndex != NoIndex {
		t.Errorf("Expected nothing to open with an empty selection, got %d", res.OpenIndex)
	}
}

func TestEmptyCollection(t *testing.T) {
	res := HandleKey(NewSelection(), KeyDown, false, nil, layout.List, 1)
	if res.Handled {
		t.Error("Expected movement in an empty collection to fall through")
	}
}
