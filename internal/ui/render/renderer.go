// Package render draws the virtualization window to a tcell screen. It is a
// pure consumer of the engine: which entries to draw, and where, comes
// entirely from the window's start index and pixel offsets.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kestrelfm/kestrel/internal/fs"
	"github.com/kestrelfm/kestrel/internal/layout"
	"github.com/kestrelfm/kestrel/internal/nav"
	"github.com/kestrelfm/kestrel/internal/view"
)

// ContentTop is the screen row where the entry area begins (below the
// header). The app layer uses it to translate mouse coordinates into
// container-local ones.
const ContentTop = 1

// Renderer handles all UI rendering.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI from the controller's current state.
func (r *Renderer) Render(c *nav.Controller) {
	r.screen.Clear()
	w, h := r.screen.Size()

	r.drawHeader(c, w)
	r.drawContent(c, w, h)
	r.drawStatusLine(c, w, h)

	r.screen.Show()
}

func (r *Renderer) drawHeader(c *nav.Controller, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	path := c.Current()
	if path == "" {
		path = "/"
	}
	text := "kestrel  " + path
	if c.Loading() {
		text += "  …"
	}

	x := r.drawTextLine(0, 0, w, text, style)
	for ; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
}

func (r *Renderer) drawContent(c *nav.Controller, w, h int) {
	win := c.Window()
	if len(win.Visible) == 0 {
		return
	}

	cfg := c.Layout()
	sel := c.Selection()
	entries := c.Entries()

	caretPath := ""
	if sel.Caret >= 0 && sel.Caret < len(entries) {
		caretPath = entries[sel.Caret].Path
	}

	if c.Mode() == layout.Grid {
		r.drawGrid(win, cfg, sel, caretPath, c, w, h)
		return
	}
	r.drawList(win, cfg, sel, caretPath, c, w, h)
}

func (r *Renderer) drawList(win view.Window, cfg layout.Config, sel view.Selection, caretPath string, c *nav.Controller, w, h int) {
	stride := cfg.Stride(layout.List)
	bottom := h - 1 // status line

	for i, entry := range win.Visible {
		top := win.OffsetPixels + i*stride - c.Scroll()
		y := ContentTop + top
		if y < ContentTop || y >= bottom {
			continue
		}
		style := r.entryStyle(entry, sel, caretPath)

		name := entry.Name
		if entry.IsDir() {
			name += "/"
		}
		x := r.drawTextLine(1, y, w-1, name, style)
		for ; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (r *Renderer) drawGrid(win view.Window, cfg layout.Config, sel view.Selection, caretPath string, c *nav.Controller, w, h int) {
	stride := cfg.Stride(layout.Grid)
	columns := c.Columns()
	cell := cfg.CardWidth + cfg.Gap
	if cell < 1 {
		cell = 1
	}
	bottom := h - 1

	for i, entry := range win.Visible {
		idx := win.Start + i
		row := idx / columns
		col := idx % columns

		top := row*stride - c.Scroll()
		y := ContentTop + top
		x := cfg.Padding + col*cell

		if y+cfg.CardHeight <= ContentTop || y >= bottom {
			continue
		}

		style := r.entryStyle(entry, sel, caretPath)
		r.drawCard(x, y, cfg.CardWidth, cfg.CardHeight, bottom, entry, style)
	}
}

func (r *Renderer) drawCard(x, y, cw, ch, bottom int, entry fs.Entry, style tcell.Style) {
	for dy := 0; dy < ch; dy++ {
		row := y + dy
		if row < ContentTop || row >= bottom {
			continue
		}
		for dx := 0; dx < cw; dx++ {
			r.screen.SetContent(x+dx, row, ' ', nil, style)
		}
	}

	glyph := "·"
	if entry.IsDir() {
		glyph = "▸"
	}
	labelRow := y + ch/2
	if labelRow >= ContentTop && labelRow < bottom {
		r.drawTextLine(x+1, labelRow, cw-2, glyph+" "+entry.Name, style)
	}
}

func (r *Renderer) entryStyle(entry fs.Entry, sel view.Selection, caretPath string) tcell.Style {
	style := tcell.StyleDefault.Foreground(r.theme.FileFg)
	switch entry.Kind {
	case fs.KindDir:
		style = style.Foreground(r.theme.DirectoryFg)
	case fs.KindLink:
		style = style.Foreground(r.theme.SymlinkFg)
	}
	if entry.IsHidden() {
		style = style.Foreground(r.theme.HiddenFg)
	}

	if sel.Has(entry.Path) {
		style = style.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
	}
	if caretPath != "" && entry.Path == caretPath {
		style = style.Background(r.theme.CaretBg).Foreground(r.theme.CaretFg).Bold(true)
	}
	return style
}

func (r *Renderer) drawStatusLine(c *nav.Controller, w, h int) {
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	y := h - 1

	sel := c.Selection()
	mode := "list"
	if c.Mode() == layout.Grid {
		mode = "grid"
	}

	text := fmt.Sprintf(" %d entries  %d selected  [%s]", len(c.Entries()), len(sel.Selected), mode)
	if c.Dragging() {
		text += "  lasso"
	}

	x := r.drawTextLine(0, y, w, text, style)
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawTextLine draws text clipped to maxWidth cells and returns the next x.
func (r *Renderer) drawTextLine(x, y, maxWidth int, text string, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	width := 0
	for _, ch := range text {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			cw = 1
		}
		if width+cw > maxWidth {
			break
		}
		r.screen.SetContent(x+width, y, ch, nil, style)
		width += cw
	}
	return x + width
}
