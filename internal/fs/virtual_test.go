package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIsVirtual(t *testing.T) {
	for _, target := range []string{ViewRecent, ViewStarred, ViewTrash} {
		if !IsVirtual(target) {
			t.Errorf("Expected %q to be virtual", target)
		}
	}
	for _, target := range []string{"/", "/home/user", "recent", ""} {
		if IsVirtual(target) {
			t.Errorf("Expected %q not to be virtual", target)
		}
	}
}

func TestRouterDispatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	recent := NewRecentSource(10)
	recent.Touch(filepath.Join(dir, "a.txt"))

	r := NewRouter(NewLocalSource())
	r.Mount(ViewRecent, recent)

	entries, err := r.List(context.Background(), dir)
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected the local source to serve %s, got %d entries err=%v", dir, len(entries), err)
	}

	entries, err = r.List(context.Background(), ViewRecent)
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected the recent source to serve %q, got %d entries err=%v", ViewRecent, len(entries), err)
	}

	if _, err = r.List(context.Background(), ViewTrash); err == nil {
		t.Error("Expected an error for an unmounted view")
	}
}

func TestRecentSourceOrdering(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 3)
	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		paths[i] = filepath.Join(dir, name)
		if err := os.WriteFile(paths[i], nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	s := NewRecentSource(10)
	s.Touch(paths[0])
	s.Touch(paths[1])
	s.Touch(paths[2])
	s.Touch(paths[0]) // re-touch moves to the front without duplicating

	entries, err := s.List(context.Background(), ViewRecent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Path != paths[0] || entries[1].Path != paths[2] || entries[2].Path != paths[1] {
		t.Errorf("Expected newest-first order, got %s %s %s",
			entries[0].Name, entries[1].Name, entries[2].Name)
	}
}

func TestRecentSourceSkipsVanished(t *testing.T) {
	dir := t.TempDir()
	kept := filepath.Join(dir, "kept.txt")
	if err := os.WriteFile(kept, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewRecentSource(10)
	s.Touch(filepath.Join(dir, "gone.txt"))
	s.Touch(kept)

	entries, err := s.List(context.Background(), ViewRecent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != kept {
		t.Errorf("Expected only the surviving path, got %d entries", len(entries))
	}
}

func TestRecentSourceLimit(t *testing.T) {
	dir := t.TempDir()
	s := NewRecentSource(2)
	var paths []string
	for _, name := range []string{"a", "b", "c"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
		s.Touch(p)
	}

	entries, err := s.List(context.Background(), ViewRecent)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected the limit to cap the list at 2, got %d", len(entries))
	}
	if entries[0].Path != paths[2] || entries[1].Path != paths[1] {
		t.Error("Expected the oldest path to be evicted")
	}
}

func TestStarredSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "starred.txt")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStarredSource()
	s.Star(p)
	if !s.IsStarred(p) {
		t.Error("Expected the path to be starred")
	}

	entries, err := s.List(context.Background(), ViewStarred)
	if err != nil || len(entries) != 1 || entries[0].Path != p {
		t.Errorf("Expected the starred path listed, got %d entries err=%v", len(entries), err)
	}

	s.Unstar(p)
	if s.IsStarred(p) {
		t.Error("Expected the path to be unstarred")
	}
	entries, _ = s.List(context.Background(), ViewStarred)
	if len(entries) != 0 {
		t.Errorf("Expected an empty listing after unstar, got %d", len(entries))
	}
}

func TestTrashSourceMissingDirIsEmpty(t *testing.T) {
	s := NewTrashSource(filepath.Join(t.TempDir(), "no-trash-here"))
	entries, err := s.List(context.Background(), ViewTrash)
	if err != nil {
		t.Fatalf("Expected a missing trash directory to be treated as empty, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestTrashSourceLists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewTrashSource(dir)
	entries, err := s.List(context.Background(), ViewTrash)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "old.txt" {
		t.Errorf("Expected the trashed file listed, got %d entries", len(entries))
	}
}
