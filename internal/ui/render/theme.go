package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HiddenFg    tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	CaretBg     tcell.Color
	CaretFg     tcell.Color
	DirectoryFg tcell.Color
	SymlinkFg   tcell.Color
	FileFg      tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	StatusBg    tcell.Color
	StatusFg    tcell.Color
	LassoBg     tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HiddenFg:    tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color24,
		SelectionFg: tcell.ColorWhite,
		CaretBg:     tcell.Color33,
		CaretFg:     tcell.ColorWhite,
		DirectoryFg: tcell.Color39,
		SymlinkFg:   tcell.Color37,
		FileFg:      tcell.ColorDefault,
		HeaderBg:    tcell.Color236,
		HeaderFg:    tcell.ColorWhite,
		StatusBg:    tcell.Color236,
		StatusFg:    tcell.ColorWhite,
		LassoBg:     tcell.Color238,
	}
}
