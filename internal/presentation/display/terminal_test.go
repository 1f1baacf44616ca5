package display

import (
	"bytes"
	"testing"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
	"github.com/stretchr/testify/assert"
)

func newTestDisplay() (*TerminalDisplay, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewTerminalDisplayWithWriter(&DisplayConfig{PageSize: 10, Width: 100}, &buf), &buf
}

func TestAlternateScreen(t *testing.T) {
	td, buf := newTestDisplay()

	td.EnterAlternateScreen()
	td.EnterAlternateScreen()
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(util.EnterAltScreen)))

	td.ExitAlternateScreen()
	assert.Contains(t, buf.String(), util.ExitAltScreen)
	assert.Contains(t, buf.String(), util.ShowCursor)

	buf.Reset()
	td.ClearScreen()
	assert.Empty(t, buf.String(), "clear is a no-op outside the alternate screen")
}

func TestRenderLoadingScreen(t *testing.T) {
	td, buf := newTestDisplay()
	td.RenderWithState(model.DashboardView{IsLoading: true, LoadingMessage: "Connecting to tank controller..."})
	assert.Contains(t, buf.String(), "Connecting to tank controller...")
	assert.Contains(t, buf.String(), "Press 'q' to quit")
}

func TestRenderKeepsDataWhileRefreshing(t *testing.T) {
	td, buf := newTestDisplay()
	td.RenderWithState(model.DashboardView{
		IsLoading:  true,
		LastUpdate: time.Now(),
		Live:       []model.TankRecord{{"Tank_name": "FV-2", "Level": 10.0}},
	})
	assert.Contains(t, buf.String(), "FV-2")
	assert.NotContains(t, buf.String(), "Press 'q' to quit")
}

func TestRenderHelp(t *testing.T) {
	td, buf := newTestDisplay()
	td.RenderWithState(model.DashboardView{State: model.InteractionState{ShowHelp: true}})
	assert.Contains(t, buf.String(), "Keyboard Shortcuts")
	assert.Contains(t, buf.String(), "Pause/resume polling")
}

func TestRenderLayoutSwitchClearsScreen(t *testing.T) {
	td, buf := newTestDisplay()
	view := model.DashboardView{LastUpdate: time.Now()}

	td.RenderWithState(view)
	assert.NotContains(t, buf.String(), util.ClearScreen)

	buf.Reset()
	view.State.LayoutStyle = 1
	td.RenderWithState(view)
	assert.Contains(t, buf.String(), util.ClearScreen)
	assert.Contains(t, buf.String(), "BrewPub:")
}

func TestCenterText(t *testing.T) {
	assert.Equal(t, "  ab  ", centerText("ab", 6))
	assert.Equal(t, " ab  ", centerText("ab", 5))
	assert.Equal(t, "abcd", centerText("abcd", 4))
}
