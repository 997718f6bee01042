package fs

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"
)

// Kind classifies an entry in a listing.
type Kind int

const (
	KindFile Kind = iota
	KindDir
	KindLink
)

// Entry represents a single item in a directory or virtual view. Path is the
// unique identifier; listing order is significant and owned by the source that
// produced the slice.
type Entry struct {
	Path     string
	Name     string
	Kind     Kind
	Size     int64
	Modified time.Time
}

// IsDir reports whether the entry can be navigated into.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// Fingerprint computes a light signature of a listing: length plus every path,
// in order. Selection memory uses it to detect that a directory's contents
// changed while the user was away, so a stale snapshot is discarded instead of
// being applied to the wrong rows.
func Fingerprint(entries []Entry) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.Itoa(len(entries))))
	for _, e := range entries {
		h.Write([]byte{0})
		h.Write([]byte(e.Path))
	}
	return h.Sum64()
}
