package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
	"github.com/kestrelfm/kestrel/internal/nav"
	renderui "github.com/kestrelfm/kestrel/internal/ui/render"
	"github.com/kestrelfm/kestrel/internal/view"
)

const doubleClickThreshold = 300 * time.Millisecond

// Run processes events until quit.
func (app *Application) Run() {
	app.renderer.Render(app.controller)

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	for !app.shouldQuit {
		app.syncWatch()

		render := false
		select {
		case ev := <-eventChan:
			render = app.handleEvent(ev)
		case fn := <-app.funcCh:
			fn()
			render = true
		}

		// Drain whatever else queued up before repainting.
		drained := false
		for !drained {
			select {
			case fn := <-app.funcCh:
				fn()
				render = true
			default:
				drained = true
			}
		}

		if render {
			app.renderer.Render(app.controller)
		}
	}
}

// syncWatch keeps the change subscription pointed at the current location.
func (app *Application) syncWatch() {
	current := app.controller.Current()
	if current == app.watchedPath {
		return
	}
	if app.cancelWatch != nil {
		app.cancelWatch()
		app.cancelWatch = nil
	}
	app.watchedPath = current
	if current == "" || fs.IsVirtual(current) {
		return
	}
	app.cancelWatch = app.watcher.Subscribe(current, func(path string) {
		app.post(func() { app.controller.NotifyChanged(path) })
	})
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return app.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		app.controller.SetViewport(w, contentHeight(h))
		return true
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	default:
		return false
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlC:
		app.shouldQuit = true
		return false
	case tcell.KeyUp:
		return app.controller.HandleKey(view.KeyUp, shift)
	case tcell.KeyDown:
		return app.controller.HandleKey(view.KeyDown, shift)
	case tcell.KeyLeft:
		return app.controller.HandleKey(view.KeyLeft, shift)
	case tcell.KeyRight:
		return app.controller.HandleKey(view.KeyRight, shift)
	case tcell.KeyHome:
		return app.controller.HandleKey(view.KeyHome, shift)
	case tcell.KeyEnd:
		return app.controller.HandleKey(view.KeyEnd, shift)
	case tcell.KeyEscape:
		return app.controller.HandleKey(view.KeyEscape, false)
	case tcell.KeyEnter:
		return app.controller.HandleKey(view.KeyEnter, false)
	case tcell.KeyCtrlA:
		app.controller.SelectAll()
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		app.controller.GoBack()
		return true
	}

	switch ev.Rune() {
	case 'q':
		app.shouldQuit = true
		return false
	case 'g':
		if app.controller.Mode() == layout.Grid {
			app.controller.SetMode(layout.List)
		} else {
			app.controller.SetMode(layout.Grid)
		}
		return true
	case 'b':
		app.controller.GoBack()
		return true
	case 'f':
		app.controller.GoForward()
		return true
	case 'R':
		app.controller.Navigate(fs.ViewRecent, nav.Options{RecordHistory: true})
		return true
	case 'S':
		app.controller.Navigate(fs.ViewStarred, nav.Options{RecordHistory: true})
		return true
	case 'T':
		app.controller.Navigate(fs.ViewTrash, nav.Options{RecordHistory: true})
		return true
	case '*':
		app.toggleStar()
		return true
	case 'r':
		app.controller.Refresh()
		return true
	}
	return false
}

func (app *Application) toggleStar() {
	sel := app.controller.Selection()
	if app.starred == nil {
		return
	}
	for _, p := range sel.Paths() {
		if app.starred.IsStarred(p) {
			app.starred.Unstar(p)
		} else {
			app.starred.Star(p)
		}
	}
}

// handleMouse maps pointer input onto the lasso and click selection. The
// gesture is fixed at press time from the modifiers then held: ctrl adds,
// shift subtracts, plain replaces.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	cx, cy := x, y-renderui.ContentTop

	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		app.controller.ScrollBy(-3 * app.controller.Layout().Stride(app.controller.Mode()))
		return true
	case ev.Buttons()&tcell.WheelDown != 0:
		app.controller.ScrollBy(3 * app.controller.Layout().Stride(app.controller.Mode()))
		return true
	}

	primaryHeld := ev.Buttons()&tcell.Button1 != 0

	if primaryHeld && !app.mouseDown {
		app.mouseDown = true
		app.pressX, app.pressY = cx, cy
		app.pressToggle = ev.Modifiers()&tcell.ModCtrl != 0
		app.pressExtend = ev.Modifiers()&tcell.ModShift != 0

		gesture := view.GestureReplace
		if app.pressToggle {
			gesture = view.GestureAdditive
		} else if app.pressExtend {
			gesture = view.GestureSubtractive
		}
		app.controller.PointerDown(cx, cy, true, gesture)
		return true
	}

	if primaryHeld && app.mouseDown {
		app.controller.PointerMove(cx, cy)
		return true
	}

	if !primaryHeld && app.mouseDown {
		app.mouseDown = false
		didDrag := app.controller.PointerUp()
		if !didDrag {
			app.handleClick(app.pressX, app.pressY)
		}
		return true
	}

	return false
}

// handleClick resolves a press-release with no net movement into a
// single-item selection or, on empty space, a clear.
func (app *Application) handleClick(cx, cy int) {
	idx, ok := app.hitIndex(cx, cy)
	if !ok {
		if !app.pressToggle && !app.pressExtend {
			app.controller.ClearSelection()
		}
		app.lastClickIdx = -1
		return
	}

	double := idx == app.lastClickIdx && time.Since(app.lastClick) <= doubleClickThreshold
	app.lastClickIdx = idx
	app.lastClick = time.Now()

	app.controller.Click(idx, app.pressToggle, app.pressExtend)
	if double && !app.pressToggle && !app.pressExtend {
		app.controller.OpenAt(idx)
	}
}

// hitIndex maps a container-local point to the entry under it.
func (app *Application) hitIndex(cx, cy int) (int, bool) {
	entries := app.controller.Entries()
	if len(entries) == 0 {
		return 0, false
	}

	scroll := app.controller.Scroll()
	point := view.Rect{X0: cx, Y0: cy + scroll, X1: cx, Y1: cy + scroll}
	lo, hi, ok := view.IndexRangeForRect(point, len(entries),
		view.Viewport{Width: app.width(), Height: contentHeight(app.height())},
		app.controller.Mode(), app.controller.Layout())
	if !ok || lo != hi {
		return 0, false
	}
	return lo, true
}

func (app *Application) width() int {
	w, _ := app.screen.Size()
	return w
}

func (app *Application) height() int {
	_, h := app.screen.Size()
	return h
}
