package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Virtual view identifiers. Virtual views are transient: selection memory is
// not captured for them, since their contents shift under the user's feet.
const (
	ViewRecent  = "recent:"
	ViewStarred = "starred:"
	ViewTrash   = "trash:"
)

// IsVirtual reports whether a navigation target names a virtual view rather
// than a directory on disk.
func IsVirtual(target string) bool {
	return strings.HasSuffix(target, ":") ||
		strings.HasPrefix(target, ViewRecent) ||
		strings.HasPrefix(target, ViewStarred) ||
		strings.HasPrefix(target, ViewTrash)
}

// Router dispatches a navigation target to the source that serves it.
type Router struct {
	local   Source
	virtual map[string]Source
}

func NewRouter(local Source) *Router {
	return &Router{
		local:   local,
		virtual: make(map[string]Source),
	}
}

// Mount registers a source for a virtual view id.
func (r *Router) Mount(viewID string, src Source) {
	r.virtual[viewID] = src
}

func (r *Router) List(ctx context.Context, target string) ([]Entry, error) {
	if src, ok := r.virtual[target]; ok {
		return src.List(ctx, target)
	}
	if IsVirtual(target) {
		return nil, fmt.Errorf("no source mounted for view %q", target)
	}
	return r.local.List(ctx, target)
}

// RecentSource remembers recently opened paths, newest first.
type RecentSource struct {
	mu    sync.Mutex
	limit int
	paths []string
}

func NewRecentSource(limit int) *RecentSource {
	if limit < 1 {
		limit = 50
	}
	return &RecentSource{limit: limit}
}

// Touch records a path as the most recently opened one.
func (s *RecentSource) Touch(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.paths[:0]
	for _, p := range s.paths {
		if p != path {
			kept = append(kept, p)
		}
	}
	s.paths = append([]string{path}, kept...)
	if len(s.paths) > s.limit {
		s.paths = s.paths[:s.limit]
	}
}

func (s *RecentSource) List(ctx context.Context, _ string) ([]Entry, error) {
	s.mu.Lock()
	paths := append([]string(nil), s.paths...)
	s.mu.Unlock()

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue // dropped from disk since it was touched
		}
		kind := KindFile
		if info.IsDir() {
			kind = KindDir
		}
		entries = append(entries, Entry{
			Path:     p,
			Name:     filepath.Base(p),
			Kind:     kind,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	return entries, nil
}

// StarredSource serves the user's starred paths.
type StarredSource struct {
	mu      sync.Mutex
	starred map[string]struct{}
}

func NewStarredSource() *StarredSource {
	return &StarredSource{starred: make(map[string]struct{})}
}

func (s *StarredSource) Star(path string) {
	s.mu.Lock()
	s.starred[path] = struct{}{}
	s.mu.Unlock()
}

func (s *StarredSource) Unstar(path string) {
	s.mu.Lock()
	delete(s.starred, path)
	s.mu.Unlock()
}

func (s *StarredSource) IsStarred(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.starred[path]
	return ok
}

func (s *StarredSource) List(ctx context.Context, _ string) ([]Entry, error) {
	s.mu.Lock()
	paths := make([]string, 0, len(s.starred))
	for p := range s.starred {
		paths = append(paths, p)
	}
	s.mu.Unlock()

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		kind := KindFile
		if info.IsDir() {
			kind = KindDir
		}
		entries = append(entries, Entry{
			Path:     p,
			Name:     filepath.Base(p),
			Kind:     kind,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	SortEntries(entries)
	return entries, nil
}

// TrashSource lists an XDG-style trash files directory.
type TrashSource struct {
	dir string
}

func NewTrashSource(dir string) *TrashSource {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share", "Trash", "files")
		}
	}
	return &TrashSource{dir: dir}
}

func (s *TrashSource) List(ctx context.Context, _ string) ([]Entry, error) {
	if s.dir == "" {
		return nil, nil
	}
	dirEntries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil // empty trash, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("read trash %s: %w", s.dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		kind := KindFile
		if de.IsDir() {
			kind = KindDir
		}
		entries = append(entries, Entry{
			Path:     filepath.Join(s.dir, de.Name()),
			Name:     de.Name(),
			Kind:     kind,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	SortEntries(entries)
	return entries, nil
}
