package util

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"

	ClearScreen       = "\033[2J"
	ClearScrollback   = "\033[3J"
	MoveCursorHome    = "\033[H"
	HideCursor        = "\033[?25l"
	ShowCursor        = "\033[?25h"
	EnterAltScreen    = "\033[?1049h"
	ExitAltScreen     = "\033[?1049l"
	ClearLineToCursor = "\033[0K"
)

// GetDisplayWidth calculates the display width of a string, accounting for wide runes
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width
func PadRight(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return text + strings.Repeat(" ", width-w)
}

// Truncate shortens text to the display width, marking the cut with an ellipsis
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// Colorize wraps text in a color and reset sequence
func Colorize(color, text string) string {
	return fmt.Sprintf("%s%s%s", color, text, ColorReset)
}

// FormatHeaderTitle formats main header titles (Cyan + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorCyan, title, ColorReset)
}

// FormatSectionSeparator creates a visual separator line of the given width
func FormatSectionSeparator(width int) string {
	if width <= 0 {
		width = 80
	}
	return Colorize(ColorGray, strings.Repeat("─", width))
}
