// Package display draws the live dashboard on the terminal.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/layout"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// DisplayConfig holds rendering settings
type DisplayConfig struct {
	PageSize int
	// Width overrides the detected terminal width when set
	Width int
}

type TerminalDisplay struct {
	config            *DisplayConfig
	out               io.Writer
	mu                sync.Mutex
	inAlternateScreen bool
	lastLayoutStyle   int
	lastDraw          time.Time
}

func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	return NewTerminalDisplayWithWriter(config, os.Stdout)
}

// NewTerminalDisplayWithWriter renders into w instead of stdout
func NewTerminalDisplayWithWriter(config *DisplayConfig, w io.Writer) *TerminalDisplay {
	if config == nil {
		config = &DisplayConfig{}
	}
	return &TerminalDisplay{config: config, out: w}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if !td.inAlternateScreen {
		fmt.Fprint(td.out, util.EnterAltScreen, util.ClearScreen, util.ClearScrollback, util.MoveCursorHome, util.HideCursor)
		td.inAlternateScreen = true
	}
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.inAlternateScreen {
		fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.ExitAltScreen)
		td.inAlternateScreen = false
	}
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	td.mu.Lock()
	defer td.mu.Unlock()
	if td.inAlternateScreen {
		fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome)
	}
}

// RenderWithState draws one frame. The frame is built off-screen and written
// in one call to avoid flicker.
func (td *TerminalDisplay) RenderWithState(view model.DashboardView) {
	td.mu.Lock()
	defer td.mu.Unlock()

	var frame strings.Builder

	// A layout switch leaves lines of the old layout behind
	if td.lastLayoutStyle != view.State.LayoutStyle {
		frame.WriteString(util.ClearScreen)
		td.lastLayoutStyle = view.State.LayoutStyle
	}
	frame.WriteString(util.MoveCursorHome)

	switch {
	case view.State.ShowHelp:
		td.renderHelp(&frame)
	case view.IsLoading && view.LastUpdate.IsZero():
		td.renderLoadingScreen(&frame, view.LoadingMessage)
	default:
		param := model.LayoutParam{Width: td.config.Width, PageSize: td.config.PageSize}
		if param.Width == 0 {
			param = layout.DefaultParam(td.config.PageSize)
		}
		strategy := layout.GetLayoutStrategy(view.State.LayoutStyle)
		if err := strategy.Render(&frame, view, param); err != nil {
			util.LogError("Failed to render dashboard", util.F("layout", strategy.GetName()), util.F("error", err))
			return
		}
	}

	// Clear whatever the previous, possibly longer, frame left below
	frame.WriteString("\033[J")

	if _, err := io.WriteString(td.out, frame.String()); err != nil {
		util.LogDebug("Terminal write failed", util.F("error", err))
	}
	td.lastDraw = time.Now()
}

func (td *TerminalDisplay) renderHelp(b *strings.Builder) {
	b.WriteString(util.FormatHeaderTitle("Brew Pub Batch-Out Monitor - Help"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("═", 60))
	b.WriteString("\n\nKeyboard Shortcuts:\n\n")
	b.WriteString("  q/Esc/Ctrl+C - Quit the program\n")
	b.WriteString("  r            - Poll the tank controller now\n")
	b.WriteString("  p            - Pause/resume polling\n")
	b.WriteString("  ←/→ or b/n   - Previous/next history page\n")
	b.WriteString("  t            - Change layout style (Full → Minimal)\n")
	b.WriteString("  h            - Show this help\n")
	b.WriteString("  ESC          - Close help (or quit if nothing is open)\n\n")
	b.WriteString("History:\n")
	b.WriteString("  An event is recorded whenever a tank reading shows less volume\n")
	b.WriteString("  than the last recorded event. Volume (L) = level (cm) × 0.9 × π.\n\n")
	b.WriteString(strings.Repeat("═", 60))
	b.WriteString("\nPress 'h' to return...\n")
}

// renderLoadingScreen is shown until the first poll finishes
func (td *TerminalDisplay) renderLoadingScreen(b *strings.Builder, message string) {
	if message == "" {
		message = "Loading data..."
	}

	loadingChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	animIndex := int(time.Now().Unix()) % len(loadingChars)

	boxWidth := 50
	line := func(text string) {
		fmt.Fprintf(b, "║%s║\n", centerText(text, boxWidth-2))
	}

	b.WriteString("\n\n\n")
	fmt.Fprintf(b, "╔%s╗\n", strings.Repeat("═", boxWidth-2))
	line("Brew Pub Batch-Out Monitor")
	fmt.Fprintf(b, "╠%s╣\n", strings.Repeat("═", boxWidth-2))
	line("")
	line(loadingChars[animIndex] + " " + message)
	line("")
	line("Press 'q' to quit")
	fmt.Fprintf(b, "╚%s╝\n", strings.Repeat("═", boxWidth-2))
}

// centerText centers text within the given display width
func centerText(text string, width int) string {
	padding := width - util.GetDisplayWidth(text)
	if padding <= 0 {
		return util.Truncate(text, width)
	}
	leftPad := padding / 2
	return strings.Repeat(" ", leftPad) + text + strings.Repeat(" ", padding-leftPad)
}
