// Package app owns the terminal event loop and wires raw tcell events into
// the view & navigation engine: keys to the keyboard navigator, mouse drags
// to the lasso, wheel to the scroll offset, and loader completions back onto
// the loop through the dispatch channel.
package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
	"github.com/kestrelfm/kestrel/internal/nav"
	renderui "github.com/kestrelfm/kestrel/internal/ui/render"
)

// Config carries everything the application needs at startup.
type Config struct {
	StartPath     string
	Mode          layout.Mode
	Source        fs.Source
	Recent        *fs.RecentSource
	Starred       *fs.StarredSource
	WatchInterval time.Duration
	Log           *zap.Logger
}

// Application drives the engine from terminal events.
type Application struct {
	screen     tcell.Screen
	controller *nav.Controller
	renderer   *renderui.Renderer
	log        *zap.Logger

	recent  *fs.RecentSource
	starred *fs.StarredSource

	watcher     *fs.Watcher
	watchedPath string
	cancelWatch func()

	funcCh     chan func()
	shouldQuit bool

	// mouse state
	mouseDown    bool
	pressX       int
	pressY       int
	pressToggle  bool
	pressExtend  bool
	lastClickIdx int
	lastClick    time.Time
}

// NewApplication initializes the screen and the engine.
func NewApplication(cfg Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	app := &Application{
		screen:       screen,
		log:          log,
		recent:       cfg.Recent,
		starred:      cfg.Starred,
		funcCh:       make(chan func(), 16),
		lastClickIdx: -1,
	}

	controller := nav.NewController(nav.Config{
		Loader: nav.NewAsyncLoader(cfg.Source),
		Layout: cellLayout(),
		Mode:   cfg.Mode,
		Log:    log,
		OpenEntry: func(e fs.Entry) {
			if app.recent != nil {
				app.recent.Touch(e.Path)
			}
			log.Info("open entry", zap.String("path", e.Path))
		},
		Notify: func(err error) {
			log.Warn("navigation error", zap.Error(err))
		},
	})
	controller.SetDispatch(app.post)
	app.controller = controller
	app.renderer = renderui.NewRenderer(screen)

	w, h := screen.Size()
	controller.SetViewport(w, contentHeight(h))

	app.watcher = fs.NewWatcher(cfg.WatchInterval)

	controller.Navigate(cfg.StartPath, nav.Options{RecordHistory: true})
	return app, nil
}

// cellLayout is the terminal geometry: one cell per pixel.
func cellLayout() layout.Config {
	return layout.Config{
		RowHeight:  1,
		CardWidth:  18,
		CardHeight: 3,
		Gap:        1,
		Padding:    1,
		Overscan:   2,
	}
}

// contentHeight is the entry area: screen minus header and status line.
func contentHeight(screenHeight int) int {
	h := screenHeight - 2
	if h < 0 {
		h = 0
	}
	return h
}

func (app *Application) post(fn func()) {
	select {
	case app.funcCh <- fn:
	default:
		go func() { app.funcCh <- fn }()
	}
}

// Controller exposes the engine for collaborators (context menus, file ops).
func (app *Application) Controller() *nav.Controller {
	return app.controller
}

// Close releases the screen and stops background work.
func (app *Application) Close() error {
	if app.cancelWatch != nil {
		app.cancelWatch()
	}
	app.watcher.Close()
	app.controller.Close()
	app.screen.Fini()
	return nil
}
