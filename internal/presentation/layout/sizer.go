package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
	"golang.org/x/term"
)

const (
	defaultWidth = 100
	minWidth     = 60
	maxWidth     = 180
)

// Package-level singleton Sizer instance
var sharedSizer = &Sizer{}

type Sizer struct {
	// width overrides the terminal size when set
	width int
}

// displayWidth calculates the actual display width of a string containing emojis and Unicode characters
func (i Sizer) displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadString pads a string to a specific display width, handling emojis correctly
func (i Sizer) PadString(s string, width int, leftAlign bool) string {
	actualWidth := i.displayWidth(s)
	if actualWidth >= width {
		return s
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

func (i Sizer) GetMaxWidth() int {
	termWidth := i.width
	if termWidth == 0 {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w = defaultWidth
		}
		termWidth = w
	}
	return clampWidth(termWidth)
}

func clampWidth(width int) int {
	if width < minWidth {
		return minWidth
	}
	if width > maxWidth {
		util.LogDebugf("Capping layout width %d to %d", width, maxWidth)
		return maxWidth
	}
	return width
}
