// Package layout holds the pure geometry used by the virtualizer: item
// metrics, view mode, and the defensive clamping that keeps division safe
// when a config is malformed.
package layout

// Mode selects the presentation of an entry collection.
type Mode int

const (
	List Mode = iota
	Grid
)

// Config describes item geometry in pixels. Zero or negative values are
// tolerated everywhere; strides and column counts clamp to 1.
type Config struct {
	RowHeight  int // list row stride
	CardWidth  int
	CardHeight int
	Gap        int // spacing between grid cards
	Padding    int // container inset
	Overscan   int // extra rows rendered above/below the viewport
}

// Default returns the stock desktop geometry.
func Default() Config {
	return Config{
		RowHeight:  28,
		CardWidth:  120,
		CardHeight: 96,
		Gap:        8,
		Padding:    12,
		Overscan:   4,
	}
}

// Stride returns the vertical pixel distance between consecutive rows,
// never less than 1.
func (c Config) Stride(m Mode) int {
	stride := c.RowHeight
	if m == Grid {
		stride = c.CardHeight + c.Gap
	}
	if stride < 1 {
		stride = 1
	}
	return stride
}

// Columns returns how many cards fit across a container, never less than 1.
func (c Config) Columns(containerWidth int) int {
	cell := c.CardWidth + c.Gap
	if cell < 1 {
		cell = 1
	}
	cols := (containerWidth - c.Padding + c.Gap) / cell
	if cols < 1 {
		cols = 1
	}
	return cols
}

// Rows returns how many grid rows n entries occupy at the given column count.
func Rows(n, columns int) int {
	if columns < 1 {
		columns = 1
	}
	return (n + columns - 1) / columns
}

// ClampedOverscan returns a non-negative overscan.
func (c Config) ClampedOverscan() int {
	if c.Overscan < 0 {
		return 0
	}
	return c.Overscan
}
