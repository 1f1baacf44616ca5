package monitor

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/data/telemetry"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// RefreshOutcome reports what one poll did
type RefreshOutcome struct {
	// Unchanged is set when the payload equals the previous one
	Unchanged bool
	Result    batchout.IngestResult
	Err       error
}

// RefreshController polls the tank controller and feeds the tracker
type RefreshController struct {
	fetcher      telemetry.Fetcher
	tracker      HistoryTracker
	stateManager *StateManager

	refreshMutex sync.Mutex // Prevent concurrent refreshes
	lastPayload  []byte
	hasLoaded    bool
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(fetcher telemetry.Fetcher, tracker HistoryTracker, stateManager *StateManager) *RefreshController {
	rc := &RefreshController{
		fetcher:      fetcher,
		tracker:      tracker,
		stateManager: stateManager,
	}
	stateManager.SetHistory(tracker.History())
	return rc
}

// Refresh performs one poll. Fetch failures only surface as an error state
// until the first successful poll; afterwards the last snapshot stays on
// screen and the failure is logged.
func (rc *RefreshController) Refresh(ctx context.Context) RefreshOutcome {
	rc.refreshMutex.Lock()
	defer rc.refreshMutex.Unlock()

	rc.stateManager.SetLoadingState(true, "Refreshing data...")
	defer rc.stateManager.SetLoadingState(false, "")

	pollID := uuid.NewString()
	snap, err := rc.fetcher.Fetch(ctx)
	if err != nil {
		if !rc.hasLoaded {
			rc.stateManager.SetError(fmt.Sprintf("Unable to reach tank controller: %v", err))
			util.LogError("Initial telemetry poll failed", util.F("poll", pollID), util.F("error", err))
		} else {
			util.LogWarn("Telemetry poll failed, keeping last snapshot", util.F("poll", pollID), util.F("error", err))
		}
		return RefreshOutcome{Err: err}
	}

	rc.hasLoaded = true
	rc.stateManager.SetError("")
	rc.stateManager.SetSnapshot(snap.Records, snap.FetchedAt)

	if rc.lastPayload != nil && bytes.Equal(snap.Payload, rc.lastPayload) {
		util.LogDebug("Telemetry payload unchanged", util.F("poll", pollID), util.F("records", len(snap.Records)))
		return RefreshOutcome{Unchanged: true}
	}
	rc.lastPayload = snap.Payload

	result := rc.tracker.Ingest(snap.Records)
	util.LogDebug("Telemetry snapshot ingested", util.F("poll", pollID),
		util.F("records", result.Total), util.F("accepted", result.Accepted))
	if result.Committed {
		rc.stateManager.SetHistory(rc.tracker.History())
		rc.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.StatusMessage = fmt.Sprintf("Recorded %d new batch-out event(s)", result.Accepted)
		})
	}
	if result.SaveErr != nil {
		rc.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.StatusMessage = fmt.Sprintf("History not saved: %v", result.SaveErr)
		})
	}

	return RefreshOutcome{Result: result}
}

// ReloadHistory re-reads the persisted log after it changed outside this process
func (rc *RefreshController) ReloadHistory() int {
	rc.refreshMutex.Lock()
	defer rc.refreshMutex.Unlock()

	n := rc.tracker.Reload()
	rc.stateManager.SetHistory(rc.tracker.History())
	rc.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.StatusMessage = fmt.Sprintf("History reloaded (%d events)", n)
	})
	util.LogInfo("Batch-out history reloaded", util.F("entries", n))
	return n
}
