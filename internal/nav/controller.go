// Package nav sequences asynchronous loads of directory and virtual-view
// content and owns the state the rest of the surface reacts to: current
// location, entry collection, selection, scroll, and the virtualization
// window. A monotonic generation counter decides which load completions are
// still relevant; stale ones are discarded without touching shared state.
package nav

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
	"github.com/kestrelfm/kestrel/internal/view"
)

// Options qualifies a navigation request.
type Options struct {
	RecordHistory bool
	Silent        bool // background refresh: no scroll reset, no recenter
}

// Config wires the controller's collaborators.
type Config struct {
	Loader        Loader
	Layout        layout.Config
	Mode          layout.Mode
	Log           *zap.Logger
	OpenEntry     func(fs.Entry) // non-directory activation
	Notify        func(error)    // load-failure surface
	DebounceDelay time.Duration  // external change coalescing window
}

type pendingNav struct {
	target     string
	opts       Options
	generation int
}

type inFlightNav struct {
	target     string
	opts       Options
	generation int
}

// Controller is the root of the view & navigation engine. All methods must be
// called from the owning event loop goroutine; async completions re-enter
// through the dispatch hook set via SetDispatch.
type Controller struct {
	loader Loader
	log    *zap.Logger

	dispatch func(func())

	current string
	entries []fs.Entry
	loading bool

	generation    int
	userNavActive bool
	inFlight      inFlightNav
	pending       *pendingNav

	history      []string
	historyIndex int

	memory    *view.Memory
	selection view.Selection
	lasso     view.Lasso

	scroll   int
	viewport view.Viewport
	mode     layout.Mode
	cfg      layout.Config
	window   view.Window

	openEntry func(fs.Entry)
	notify    func(error)

	debounceDelay time.Duration
	debounceTimer *time.Timer
}

func NewController(cfg Config) *Controller {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	delay := cfg.DebounceDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	return &Controller{
		loader:        cfg.Loader,
		log:           log,
		mode:          cfg.Mode,
		cfg:           cfg.Layout,
		memory:        view.NewMemory(0),
		selection:     view.NewSelection(),
		historyIndex:  -1,
		openEntry:     cfg.OpenEntry,
		notify:        cfg.Notify,
		debounceDelay: delay,
	}
}

// SetDispatch installs the hook that marshals loader callbacks and timer
// fires onto the owner's event loop. Without it, completions apply inline.
func (c *Controller) SetDispatch(fn func(func())) {
	c.dispatch = fn
}

func (c *Controller) post(fn func()) {
	if c.dispatch != nil {
		c.dispatch(fn)
		return
	}
	fn()
}

// Close stops timers and cancels any in-flight load.
func (c *Controller) Close() {
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	if c.loading && c.loader != nil {
		c.loader.Cancel(c.inFlight.generation)
	}
}

// ===== NAVIGATION =====

// Navigate requests a load of target. While another load is in flight the
// request is parked in the single pending slot (overwriting any previously
// parked one); a request for the in-flight target is dropped as duplicate
// work. Silent refreshes are skipped entirely while anything is loading.
func (c *Controller) Navigate(target string, opts Options) {
	if target == "" {
		return
	}
	if !fs.IsVirtual(target) {
		target = filepath.Clean(target)
	}

	if c.loading {
		if opts.Silent {
			return
		}
		if target == c.inFlight.target {
			return
		}
		c.generation++
		c.pending = &pendingNav{target: target, opts: opts, generation: c.generation}
		c.log.Debug("queued pending navigation",
			zap.String("target", target), zap.Int("generation", c.generation))
		return
	}

	if target == c.current && !opts.Silent {
		return
	}

	c.generation++
	c.startLoad(target, opts, c.generation)
}

// Refresh silently reloads the current location. Skipped while any load is
// in flight so a stale refresh cannot clobber a just-completed navigation.
func (c *Controller) Refresh() {
	if c.current == "" || c.userNavActive || c.loading {
		return
	}
	c.generation++
	c.startLoad(c.current, Options{Silent: true}, c.generation)
}

// NotifyChanged feeds an external change notification into the debounced
// silent-refresh path. Multiple signals within the window coalesce; the
// refresh is skipped if the location changed away before the timer fires.
func (c *Controller) NotifyChanged(path string) {
	if c.debounceTimer != nil {
		c.debounceTimer.Stop()
	}
	c.debounceTimer = time.AfterFunc(c.debounceDelay, func() {
		c.post(func() {
			if path != c.current {
				return
			}
			c.Refresh()
		})
	})
}

func (c *Controller) GoBack() {
	if c.historyIndex > 0 {
		c.historyIndex--
		c.Navigate(c.history[c.historyIndex], Options{})
	}
}

func (c *Controller) GoForward() {
	if c.historyIndex < len(c.history)-1 {
		c.historyIndex++
		c.Navigate(c.history[c.historyIndex], Options{})
	}
}

func (c *Controller) startLoad(target string, opts Options, generation int) {
	// Leaving a directory-backed view: remember its selection for the way back.
	if !opts.Silent && c.current != "" && !fs.IsVirtual(c.current) {
		c.memory.Save(c.current, c.selection, c.entries)
	}

	c.loading = true
	c.userNavActive = !opts.Silent
	c.inFlight = inFlightNav{target: target, opts: opts, generation: generation}

	c.log.Debug("starting load",
		zap.String("target", target),
		zap.Int("generation", generation),
		zap.Bool("silent", opts.Silent))

	c.loader.Start(LoadRequest{
		Generation: generation,
		Target:     target,
		Callback: func(res LoadResult) {
			c.post(func() { c.applyResult(res) })
		},
	})
}

func (c *Controller) applyResult(res LoadResult) {
	if res.Generation != c.generation {
		// Superseded: discard effects, but the settle still releases the
		// loading state and lets the pending navigation run.
		if c.loading && c.inFlight.generation == res.Generation {
			c.loading = false
			c.userNavActive = false
			c.log.Debug("discarding stale load result",
				zap.String("target", res.Target),
				zap.Int("generation", res.Generation),
				zap.Int("current", c.generation))
			c.startPending(res.Generation)
		}
		return
	}

	opts := c.inFlight.opts
	c.loading = false
	c.userNavActive = false

	if res.Err != nil {
		// Previous entries and selection stay untouched; no auto-retry.
		c.log.Warn("load failed", zap.String("target", res.Target), zap.Error(res.Err))
		if c.notify != nil {
			c.notify(res.Err)
		}
		c.startPending(res.Generation)
		return
	}

	samePath := res.Target == c.current
	c.current = res.Target
	c.entries = res.Entries

	switch {
	case opts.Silent && samePath:
		c.selection = view.Retain(c.selection, res.Entries)
	case fs.IsVirtual(res.Target):
		c.selection = view.Clear()
	default:
		if sel, ok := c.memory.Restore(res.Target, res.Entries); ok {
			c.selection = sel
		} else {
			c.selection = view.Clear()
		}
	}

	if opts.RecordHistory {
		c.recordHistory(res.Target)
	}

	if opts.Silent {
		c.scroll = view.ClampScroll(c.scroll, c.totalPixels(), c.viewport.Height)
	} else if idx := c.focusIndex(); idx != view.NoIndex {
		c.scroll = view.CenterOn(idx, c.viewport, c.mode, c.cfg, len(c.entries))
	} else {
		c.scroll = 0
	}

	c.recomputeWindow()
	c.log.Debug("load applied",
		zap.String("target", res.Target),
		zap.Int("entries", len(res.Entries)),
		zap.Int("generation", res.Generation))

	c.startPending(res.Generation)
}

func (c *Controller) startPending(settled int) {
	p := c.pending
	c.pending = nil
	if p == nil {
		return
	}
	if p.generation <= settled {
		return
	}
	if p.target == c.current {
		c.log.Debug("dropping pending navigation, already there",
			zap.String("target", p.target))
		return
	}
	c.startLoad(p.target, p.opts, p.generation)
}

func (c *Controller) recordHistory(target string) {
	if c.historyIndex >= 0 && c.historyIndex < len(c.history) && c.history[c.historyIndex] == target {
		return
	}
	c.history = append(c.history[:c.historyIndex+1], target)
	c.historyIndex = len(c.history) - 1
}

// focusIndex is the index to recenter on after a user navigation: the caret
// when valid, else the first selected entry in traversal order.
func (c *Controller) focusIndex() int {
	if c.selection.Caret >= 0 && c.selection.Caret < len(c.entries) {
		return c.selection.Caret
	}
	if !c.selection.Empty() {
		for i, e := range c.entries {
			if c.selection.Has(e.Path) {
				return i
			}
		}
	}
	return view.NoIndex
}

// ===== VIEWPORT & WINDOW =====

func (c *Controller) totalPixels() int {
	stride := c.cfg.Stride(c.mode)
	if c.mode == layout.Grid {
		cols := c.cfg.Columns(c.viewport.Width)
		return layout.Rows(len(c.entries), cols) * stride
	}
	return len(c.entries) * stride
}

func (c *Controller) recomputeWindow() {
	if win, ok := view.Recompute(c.entries, c.scroll, c.viewport, c.mode, c.cfg); ok {
		c.window = win
	}
}

// SetViewport installs a new measured container size.
func (c *Controller) SetViewport(width, height int) {
	c.viewport = view.Viewport{Width: width, Height: height}
	c.scroll = view.ClampScroll(c.scroll, c.totalPixels(), height)
	c.recomputeWindow()
}

// SetMode switches between list and grid presentation, keeping the selection
// and bringing the caret back into view under the new geometry.
func (c *Controller) SetMode(m layout.Mode) {
	if m == c.mode {
		return
	}
	c.mode = m
	c.scroll = view.ClampScroll(c.scroll, c.totalPixels(), c.viewport.Height)
	if c.selection.Caret >= 0 && c.selection.Caret < len(c.entries) {
		if s, moved := view.EnsureVisible(c.selection.Caret, c.scroll, c.viewport, c.mode, c.cfg, len(c.entries)); moved {
			c.scroll = s
		}
	}
	c.recomputeWindow()
}

func (c *Controller) Mode() layout.Mode {
	return c.mode
}

func (c *Controller) Layout() layout.Config {
	return c.cfg
}

// Columns reports the current grid column count (1 in list mode).
func (c *Controller) Columns() int {
	if c.mode != layout.Grid {
		return 1
	}
	return c.cfg.Columns(c.viewport.Width)
}

func (c *Controller) Scroll() int {
	return c.scroll
}

// SetScroll moves the viewport to an absolute content offset.
func (c *Controller) SetScroll(offset int) {
	c.scroll = view.ClampScroll(offset, c.totalPixels(), c.viewport.Height)
	c.recomputeWindow()
}

// ScrollBy moves the viewport by a pixel delta (wheel input).
func (c *Controller) ScrollBy(delta int) {
	c.SetScroll(c.scroll + delta)
}

// Window returns the current virtualization window.
func (c *Controller) Window() view.Window {
	return c.window
}

// ===== SELECTION =====

// Selection returns the current selection state.
func (c *Controller) Selection() view.Selection {
	return c.selection
}

// SetSelection is the write entry point for external collaborators such as
// context menus and bulk-operation modals. Indices that do not survive
// validation against the live collection reset to NoIndex.
func (c *Controller) SetSelection(paths []string, anchor, caret int) {
	sel := view.NewSelection()
	for _, p := range paths {
		sel.Selected[p] = struct{}{}
	}
	if anchor >= 0 && anchor < len(c.entries) && caret >= 0 && caret < len(c.entries) {
		sel.Anchor, sel.Caret = anchor, caret
	}
	c.selection = sel
}

func (c *Controller) ClearSelection() {
	c.selection = view.Clear()
}

func (c *Controller) SelectAll() {
	if len(c.entries) == 0 {
		return
	}
	c.selection = view.Selection{
		Selected: view.Range(c.entries, 0, len(c.entries)-1),
		Anchor:   0,
		Caret:    len(c.entries) - 1,
	}
}

// Click applies a single-item pointer selection. toggle is the ctrl/cmd
// variant, extend the shift variant ranging from the existing anchor.
func (c *Controller) Click(index int, toggle, extend bool) {
	if index < 0 || index >= len(c.entries) {
		return
	}

	switch {
	case toggle:
		c.selection = c.selection.ToggleOne(c.entries[index].Path)
	case extend:
		anchor := c.selection.Anchor
		if anchor < 0 || anchor >= len(c.entries) {
			anchor = index
		}
		c.selection = view.Selection{
			Selected: view.Range(c.entries, anchor, index),
			Anchor:   anchor,
			Caret:    index,
		}
	default:
		c.selection = view.Selection{
			Selected: map[string]struct{}{c.entries[index].Path: {}},
			Anchor:   index,
			Caret:    index,
		}
	}
}

// ===== KEYBOARD =====

// HandleKey feeds a key event through the keyboard navigator and applies the
// result, scrolling the caret into view when it moved.
func (c *Controller) HandleKey(key view.Key, shift bool) bool {
	res := view.HandleKey(c.selection, key, shift, c.entries, c.mode, c.Columns())
	if !res.Handled {
		return false
	}

	if res.OpenIndex != view.NoIndex {
		c.OpenAt(res.OpenIndex)
		return true
	}

	c.selection = res.Selection
	if res.Caret != view.NoIndex {
		if s, moved := view.EnsureVisible(res.Caret, c.scroll, c.viewport, c.mode, c.cfg, len(c.entries)); moved {
			c.scroll = s
			c.recomputeWindow()
		}
	}
	return true
}

// OpenAt activates the entry at index: directories navigate, everything else
// goes to the open collaborator.
func (c *Controller) OpenAt(index int) {
	if index < 0 || index >= len(c.entries) {
		return
	}
	entry := c.entries[index]
	if entry.IsDir() {
		c.Navigate(entry.Path, Options{RecordHistory: true})
		return
	}
	if c.openEntry != nil {
		c.openEntry(entry)
	}
}

// ===== LASSO =====

// PointerDown starts a lasso drag at container-local coordinates.
func (c *Controller) PointerDown(x, y int, primary bool, g view.Gesture) bool {
	return c.lasso.Start(x, y, primary, c.scroll, g, c.selection)
}

// PointerMove extends an active lasso drag and applies the selection it
// describes.
func (c *Controller) PointerMove(x, y int) {
	sel, ok := c.lasso.Move(x, y, c.scroll, c.viewport, c.mode, c.cfg, c.entries)
	if ok {
		c.selection = sel
	}
}

// PointerUp finishes the drag and reports whether any net movement occurred.
// Wired to a release anywhere, not just inside the container.
func (c *Controller) PointerUp() bool {
	return c.lasso.End()
}

// Dragging reports whether a lasso drag is in progress.
func (c *Controller) Dragging() bool {
	return c.lasso.Dragging()
}

// ===== READ ACCESS =====

func (c *Controller) Current() string {
	return c.current
}

func (c *Controller) Loading() bool {
	return c.loading
}

func (c *Controller) Entries() []fs.Entry {
	return c.entries
}
