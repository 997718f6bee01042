package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	apppkg "github.com/kestrelfm/kestrel/internal/app"
	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
	"github.com/kestrelfm/kestrel/internal/logging"
)

func main() {
	var (
		startPath     = flag.String("path", "", "directory to open (default: cwd)")
		grid          = flag.Bool("grid", false, "start in grid layout")
		logLevel      = flag.String("log-level", "info", "debug, info, warn, error")
		logFile       = flag.String("log-file", "", "log destination (default: discard)")
		watchInterval = flag.Duration("watch-interval", 2*time.Second, "change-poll interval")
		trashDir      = flag.String("trash-dir", "", "override trash files directory")
	)
	flag.Parse()

	path := *startPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving working directory: %v\n", err)
			os.Exit(1)
		}
		path = cwd
	}

	logCfg := logging.Config{Level: *logLevel, Format: "console", OutputPath: os.DevNull}
	if *logFile != "" {
		logCfg.OutputPath = *logFile
	}
	log, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	recent := fs.NewRecentSource(50)
	starred := fs.NewStarredSource()

	router := fs.NewRouter(fs.NewLocalSource())
	router.Mount(fs.ViewRecent, recent)
	router.Mount(fs.ViewStarred, starred)
	router.Mount(fs.ViewTrash, fs.NewTrashSource(*trashDir))

	mode := layout.List
	if *grid {
		mode = layout.Grid
	}

	app, err := apppkg.NewApplication(apppkg.Config{
		StartPath:     path,
		Mode:          mode,
		Source:        router,
		Recent:        recent,
		Starred:       starred,
		WatchInterval: *watchInterval,
		Log:           log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
}
