package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Source provides the entries behind a navigation target. A target is either
// an absolute directory path or a virtual view id (see virtual.go).
type Source interface {
	List(ctx context.Context, target string) ([]Entry, error)
}

// LocalSource lists directories on the local filesystem.
type LocalSource struct{}

func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

func (s *LocalSource) List(ctx context.Context, target string) ([]Entry, error) {
	dirPath := filepath.Clean(target)

	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dirPath, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		name := norm.NFC.String(de.Name())
		fullPath := filepath.Join(dirPath, de.Name())

		kind := KindFile
		isSymlink := info.Mode()&os.ModeSymlink != 0
		isDir := de.IsDir()
		if isSymlink {
			kind = KindLink
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}
		if isDir {
			kind = KindDir
		}

		entries = append(entries, Entry{
			Path:     fullPath,
			Name:     name,
			Kind:     kind,
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders a listing directories-first, then by collated name. The
// engine treats order as caller-supplied, so every source applies this before
// handing entries over.
func SortEntries(entries []Entry) {
	c := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		if cmp := c.CompareString(entries[i].Name, entries[j].Name); cmp != 0 {
			return cmp < 0
		}
		return entries[i].Path < entries[j].Path
	})
}
