package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/config"
	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/data/store"
	"github.com/penwyp/go-brewpub-monitor/internal/data/telemetry"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/display"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/layout"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// Orchestrator coordinates all components for the watch command
type Orchestrator struct {
	config *config.Config
	store  store.HistoryStore

	// Core components
	tracker      HistoryTracker
	refreshCtrl  *RefreshController
	stateManager *StateManager
	scheduler    *Scheduler

	// UI components
	display  DisplayController
	keyboard InputHandler

	// Monitoring
	watcher FileMonitor
}

// NewOrchestrator wires the poller, tracker and display around historyStore
func NewOrchestrator(cfg *config.Config, historyStore store.HistoryStore) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fetcher := telemetry.NewClient(cfg.Endpoint, cfg.RequestTimeout)
	tracker := batchout.NewTracker(historyStore)
	termDisplay := display.NewTerminalDisplay(&display.DisplayConfig{PageSize: cfg.PageSize})

	return newOrchestrator(cfg, historyStore, fetcher, tracker, termDisplay), nil
}

func newOrchestrator(cfg *config.Config, historyStore store.HistoryStore, fetcher telemetry.Fetcher,
	tracker HistoryTracker, displayCtrl DisplayController) *Orchestrator {
	stateManager := NewStateManager()
	refreshCtrl := NewRefreshController(fetcher, tracker, stateManager)

	o := &Orchestrator{
		config:       cfg,
		store:        historyStore,
		tracker:      tracker,
		refreshCtrl:  refreshCtrl,
		stateManager: stateManager,
		display:      displayCtrl,
	}
	o.scheduler = NewScheduler(cfg.RefreshInterval, func(ctx context.Context) {
		refreshCtrl.Refresh(ctx)
	})
	return o
}

// Run starts the interactive dashboard and blocks until the user quits or
// ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting Batch-Out monitor",
		util.F("endpoint", o.config.Endpoint), util.F("store", o.store.Describe()),
		util.F("interval", o.config.RefreshInterval.String()))

	ctx, cancel := context.WithCancel(ctx)
	defer o.Close()
	defer o.scheduler.Wait()
	defer cancel()

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.stateManager.SetLoadingState(true, "Connecting to tank controller...")
	o.updateDisplay()

	o.startWatcher()
	o.scheduler.Start(ctx)

	uiTicker := time.NewTicker(o.config.UIRefreshPeriod())
	defer uiTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down Batch-Out monitor...")
			return nil

		case <-o.scheduler.Done():
			return nil

		case <-uiTicker.C:
			o.updateDisplay()

		case event := <-o.watcherEvents():
			o.handleFileChange(event)

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil // Exit requested
			}
			o.updateDisplay()
		}
	}
}

// RunHeadless polls and records without a terminal UI until ctx is cancelled
func (o *Orchestrator) RunHeadless(ctx context.Context) error {
	util.LogInfo("Starting Batch-Out monitor (headless)",
		util.F("endpoint", o.config.Endpoint), util.F("store", o.store.Describe()))

	defer o.Close()

	o.startWatcher()
	o.scheduler.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			o.scheduler.Wait()
			util.LogInfo("Batch-Out monitor stopped", util.F("history", len(o.tracker.History())))
			return nil
		case event := <-o.watcherEvents():
			o.handleFileChange(event)
		}
	}
}

// PollOnce performs a single poll and returns what the tracker did
func (o *Orchestrator) PollOnce(ctx context.Context) (batchout.IngestResult, error) {
	outcome := o.refreshCtrl.Refresh(ctx)
	if outcome.Err != nil {
		return batchout.IngestResult{}, outcome.Err
	}
	return outcome.Result, nil
}

// updateDisplay renders the current state
func (o *Orchestrator) updateDisplay() {
	view := o.stateManager.View()
	view.Endpoint = o.config.Endpoint
	view.StoreName = o.store.Describe()
	view.NextRefresh = o.scheduler.NextRun()
	o.display.RenderWithState(view)
}

// handleKeyboard handles keyboard events; it returns true when the user quits
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	switch event.Type {
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case 'r', 'R':
			o.scheduler.Trigger()
		case 'p', 'P':
			o.togglePause()
		case 'h', 'H':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = !s.ShowHelp
			})
			o.display.ClearScreen()
		case 't', 'T':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.LayoutStyle = layout.NextStyle(s.LayoutStyle)
			})
		case 'n', 'N':
			o.changePage(1)
		case 'b', 'B':
			o.changePage(-1)
		}
	case interaction.KeyRight:
		o.changePage(1)
	case interaction.KeyLeft:
		o.changePage(-1)
	case interaction.KeyEscape:
		state := o.stateManager.GetInteractionState()
		if !state.ShowHelp {
			return true
		}
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
		o.display.ClearScreen()
	}

	return false
}

func (o *Orchestrator) togglePause() {
	if o.scheduler.Paused() {
		o.scheduler.Resume()
	} else {
		o.scheduler.Pause()
	}
	paused := o.scheduler.Paused()
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.IsPaused = paused
	})
	util.LogInfo("Polling toggled", util.F("paused", paused))
}

// changePage moves through the history, clamped to the existing pages
func (o *Orchestrator) changePage(delta int) {
	total := len(o.stateManager.GetHistory())
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.Page, _ = formatter.ClampPage(s.Page+delta, total, o.config.PageSize)
	})
}

// startWatcher watches the history file when the store keeps one. The
// watcher is optional, a failure only disables external-clear detection.
func (o *Orchestrator) startWatcher() {
	fileStore, ok := o.store.(interface{ Path() string })
	if !ok {
		return
	}
	watcher, err := NewHistoryWatcher(fileStore.Path())
	if err != nil {
		util.LogWarn("History file watcher disabled", util.F("error", err))
		return
	}
	o.watcher = watcher
}

// watcherEvents returns a nil channel without a watcher so select skips it
func (o *Orchestrator) watcherEvents() <-chan model.FileEvent {
	if o.watcher == nil {
		return nil
	}
	return o.watcher.Events()
}

// handleFileChange reloads the history on the scheduler goroutine so the
// tracker keeps a single writer.
func (o *Orchestrator) handleFileChange(event model.FileEvent) {
	util.LogDebug("History file changed", util.F("path", event.Path), util.F("op", event.Operation))
	o.scheduler.Enqueue(func(ctx context.Context) {
		o.refreshCtrl.ReloadHistory()
	})
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if o.keyboard != nil {
		if err := o.keyboard.Close(); err != nil {
			util.LogWarn("Failed to restore terminal", util.F("error", err))
		}
		o.keyboard = nil
	}

	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close history watcher: %w", err)
		}
		o.watcher = nil
	}

	return nil
}
