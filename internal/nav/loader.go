package nav

import (
	"context"
	"sync"

	"github.com/kestrelfm/kestrel/internal/fs"
)

// Loader performs entry reads asynchronously.
type Loader interface {
	Start(req LoadRequest)
	Cancel(generation int)
}

// LoadRequest describes one navigation load to perform.
type LoadRequest struct {
	Generation int
	Target     string
	Callback   func(LoadResult)
}

// LoadResult is emitted by a Loader once the read completes.
type LoadResult struct {
	Generation int
	Target     string
	Entries    []fs.Entry
	Err        error
}

// NewAsyncLoader constructs the default goroutine-based loader over a source.
func NewAsyncLoader(src fs.Source) Loader {
	return &asyncLoader{
		src:  src,
		jobs: make(map[int]context.CancelFunc),
	}
}

type asyncLoader struct {
	src  fs.Source
	mu   sync.Mutex
	jobs map[int]context.CancelFunc
}

func (l *asyncLoader) Start(req LoadRequest) {
	if req.Generation == 0 || req.Target == "" || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.mu.Lock()
	l.jobs[req.Generation] = cancel
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			delete(l.jobs, req.Generation)
			l.mu.Unlock()
		}()

		entries, err := l.src.List(ctx, req.Target)

		select {
		case <-ctx.Done():
			return
		default:
		}

		req.Callback(LoadResult{
			Generation: req.Generation,
			Target:     req.Target,
			Entries:    entries,
			Err:        err,
		})
	}()
}

func (l *asyncLoader) Cancel(generation int) {
	l.mu.Lock()
	if cancel, ok := l.jobs[generation]; ok {
		cancel()
		delete(l.jobs, generation)
	}
	l.mu.Unlock()
}
