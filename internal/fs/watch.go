package fs

import (
	"os"
	"sync"
	"time"
)

// Watcher polls directories for modification-time changes and notifies
// subscribers. Polling keeps it portable across local, network, and fuse
// mounts where inotify-style APIs are unreliable or absent.
type Watcher struct {
	interval time.Duration

	mu   sync.Mutex
	subs map[*subscription]struct{}
	done chan struct{}
	once sync.Once
}

type subscription struct {
	path     string
	notify   func(path string)
	lastMod  time.Time
	lastSeen bool
}

func NewWatcher(interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	w := &Watcher{
		interval: interval,
		subs:     make(map[*subscription]struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Subscribe registers a callback fired whenever path's mtime changes. The
// callback runs on the watcher goroutine; callers re-dispatch onto their own
// loop. The returned func cancels the subscription.
func (w *Watcher) Subscribe(path string, notify func(path string)) func() {
	sub := &subscription{path: path, notify: notify}
	if info, err := os.Stat(path); err == nil {
		sub.lastMod = info.ModTime()
		sub.lastSeen = true
	}

	w.mu.Lock()
	w.subs[sub] = struct{}{}
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		delete(w.subs, sub)
		w.mu.Unlock()
	}
}

// Close stops the polling goroutine.
func (w *Watcher) Close() {
	w.once.Do(func() { close(w.done) })
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watcher) poll() {
	w.mu.Lock()
	subs := make([]*subscription, 0, len(w.subs))
	for sub := range w.subs {
		subs = append(subs, sub)
	}
	w.mu.Unlock()

	for _, sub := range subs {
		info, err := os.Stat(sub.path)
		if err != nil {
			if sub.lastSeen {
				sub.lastSeen = false
				sub.notify(sub.path)
			}
			continue
		}

		mod := info.ModTime()
		if !sub.lastSeen || !mod.Equal(sub.lastMod) {
			sub.lastMod = mod
			sub.lastSeen = true
			sub.notify(sub.path)
		}
	}
}
