package monitor

import (
	"sync"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
)

// StateManager manages application state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	// Telemetry state
	liveRecords []model.TankRecord
	history     model.HistoryLog
	lastUpdate  time.Time

	// Loading state
	isLoading      bool
	loadingMessage string
	errorMessage   string

	// Interaction state
	interactionState model.InteractionState
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{
		liveRecords:      make([]model.TankRecord, 0),
		history:          make(model.HistoryLog, 0),
		interactionState: model.InteractionState{Page: 1},
	}
}

// SetSnapshot replaces the live records after a successful poll
func (sm *StateManager) SetSnapshot(records []model.TankRecord, fetchedAt time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.liveRecords = records
	sm.lastUpdate = fetchedAt
}

// GetLiveRecords returns the records of the last successful poll
func (sm *StateManager) GetLiveRecords() []model.TankRecord {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	records := make([]model.TankRecord, len(sm.liveRecords))
	copy(records, sm.liveRecords)
	return records
}

// SetHistory stores the tracker's log for display
func (sm *StateManager) SetHistory(history model.HistoryLog) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.history = history
}

// GetHistory returns the displayed log
func (sm *StateManager) GetHistory() model.HistoryLog {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.history.Clone()
}

// GetLastUpdate returns the time of the last successful poll, zero if none
func (sm *StateManager) GetLastUpdate() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.lastUpdate
}

// GetLoadingState returns current loading state and message
func (sm *StateManager) GetLoadingState() (bool, string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.isLoading, sm.loadingMessage
}

// SetLoadingState updates loading state and message
func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.isLoading = isLoading
	sm.loadingMessage = message
}

// SetError sets the error shown to the user; an empty message clears it
func (sm *StateManager) SetError(message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.errorMessage = message
}

// GetError returns the current error message
func (sm *StateManager) GetError() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.errorMessage
}

// GetInteractionState returns current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// View assembles a consistent frame of the current state
func (sm *StateManager) View() model.DashboardView {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	live := make([]model.TankRecord, len(sm.liveRecords))
	copy(live, sm.liveRecords)

	return model.DashboardView{
		Live:           live,
		History:        sm.history.Clone(),
		LastUpdate:     sm.lastUpdate,
		IsLoading:      sm.isLoading,
		LoadingMessage: sm.loadingMessage,
		ErrorMessage:   sm.errorMessage,
		State:          sm.interactionState,
	}
}
