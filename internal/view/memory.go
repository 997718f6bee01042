package view

import "github.com/kestrelfm/kestrel/internal/fs"

// Snapshot is the part of a selection worth carrying across navigation.
type Snapshot struct {
	Selected    []string
	Anchor      int
	Caret       int
	Fingerprint uint64
}

// Memory keeps the last selection seen at each directory-backed path so a
// round trip restores it. Slots are fingerprint-checked on the way out and
// evicted LRU; the most recently visited path is always retained.
type Memory struct {
	capacity int
	slots    map[string]Snapshot
	order    []string // most recent first
}

func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 64
	}
	return &Memory{
		capacity: capacity,
		slots:    make(map[string]Snapshot),
	}
}

// Save records the selection observed at path, overwriting any prior slot.
func (m *Memory) Save(path string, sel Selection, entries []fs.Entry) {
	m.slots[path] = Snapshot{
		Selected:    sel.Paths(),
		Anchor:      sel.Anchor,
		Caret:       sel.Caret,
		Fingerprint: fs.Fingerprint(entries),
	}
	m.touch(path)
	m.evict()
}

// Restore returns the remembered selection for path, rebuilt against the
// live collection. A fingerprint mismatch discards the slot: the directory
// changed enough that the old indices would land on the wrong rows.
func (m *Memory) Restore(path string, entries []fs.Entry) (Selection, bool) {
	snap, ok := m.slots[path]
	if !ok {
		return Selection{}, false
	}
	if snap.Fingerprint != fs.Fingerprint(entries) {
		m.drop(path)
		return Selection{}, false
	}
	m.touch(path)

	sel := NewSelection()
	for _, p := range snap.Selected {
		sel.Selected[p] = struct{}{}
	}
	if validIndex(snap.Anchor, entries) && validIndex(snap.Caret, entries) {
		sel.Anchor, sel.Caret = snap.Anchor, snap.Caret
	}
	return sel, true
}

// Forget drops the slot for path, if any.
func (m *Memory) Forget(path string) {
	m.drop(path)
}

func (m *Memory) touch(path string) {
	kept := m.order[:0]
	for _, p := range m.order {
		if p != path {
			kept = append(kept, p)
		}
	}
	m.order = append([]string{path}, kept...)
}

func (m *Memory) drop(path string) {
	delete(m.slots, path)
	kept := m.order[:0]
	for _, p := range m.order {
		if p != path {
			kept = append(kept, p)
		}
	}
	m.order = kept
}

func (m *Memory) evict() {
	for len(m.order) > m.capacity {
		last := m.order[len(m.order)-1]
		m.order = m.order[:len(m.order)-1]
		delete(m.slots, last)
	}
}
