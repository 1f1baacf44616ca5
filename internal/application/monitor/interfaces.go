package monitor

import (
	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/interaction"
)

// HistoryTracker owns the Batch-Out log
type HistoryTracker interface {
	// Ingest folds one snapshot into the log and persists it when it changed
	Ingest(batch []model.TankRecord) batchout.IngestResult
	// Reload re-reads the persisted log
	Reload() int
	// History returns a copy of the log, newest first
	History() model.HistoryLog
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// ClearScreen clears the terminal screen
	ClearScreen()
	// RenderWithState draws one frame
	RenderWithState(view model.DashboardView)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches the persisted history for outside changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
