package batchout

import (
	"sync"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// Store persists the whole history log under one slot
type Store interface {
	// Load returns the persisted log. A missing slot is an empty log, not an error.
	Load() (model.HistoryLog, error)
	// Save overwrites the slot with the full log
	Save(history model.HistoryLog) error
}

// IngestResult summarizes one Tracker.Ingest call
type IngestResult struct {
	Total     int
	Accepted  int
	Committed bool
	SaveErr   error
	Outcomes  []Outcome
}

// Tracker owns the Batch-Out history and is the only writer of its store.
// Ingest and Reload are meant to be called from a single goroutine; reads
// through History are safe from anywhere.
type Tracker struct {
	store Store

	mu    sync.RWMutex
	state TrackerState
}

// NewTracker loads any persisted history. An unreadable or corrupt slot is
// logged and treated as an empty history.
func NewTracker(store Store) *Tracker {
	t := &Tracker{store: store}
	t.state = TrackerState{History: loadHistory(store)}
	return t
}

// Ingest folds a snapshot into the history, persisting only when at least
// one record was accepted. A failed save keeps the in-memory result.
func (t *Tracker) Ingest(batch []model.TankRecord) IngestResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, outcomes := Ingest(t.state, batch)
	result := IngestResult{
		Total:    len(batch),
		Accepted: AcceptedCount(outcomes),
		Outcomes: outcomes,
	}

	for _, o := range outcomes {
		if o.Decision != Accepted {
			util.LogDebug("Batch-out record skipped",
				util.F("key", o.Key), util.F("volume", o.Volume), util.F("reason", o.Decision.String()))
		}
	}

	if result.Accepted == 0 {
		return result
	}

	if err := t.store.Save(next.History); err != nil {
		result.SaveErr = err
		util.LogError("Failed to persist batch-out history", util.F("error", err))
	}
	t.state = next
	result.Committed = true

	util.LogInfo("Batch-out events recorded",
		util.F("accepted", result.Accepted), util.F("total", result.Total), util.F("history", len(next.History)))
	return result
}

// Reload replaces the in-memory log with the persisted one. Used after the
// slot was cleared outside this process.
func (t *Tracker) Reload() int {
	history := loadHistory(t.store)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TrackerState{History: history}
	return len(history)
}

// History returns a copy of the log, newest first
func (t *Tracker) History() model.HistoryLog {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.History.Clone()
}

// Len returns the number of recorded events
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.state.History)
}

func loadHistory(store Store) model.HistoryLog {
	history, err := store.Load()
	if err != nil {
		util.LogWarn("Ignoring unreadable batch-out history, starting empty", util.F("error", err))
		return model.HistoryLog{}
	}

	history = dedupe(history)
	history.SortNewestFirst()
	util.LogInfo("Loaded batch-out history", util.F("entries", len(history)))
	return history
}

// dedupe drops repeated keys, keeping the first occurrence. Keyless entries
// are kept as-is.
func dedupe(history model.HistoryLog) model.HistoryLog {
	out := make(model.HistoryLog, 0, len(history))
	seen := make(map[string]struct{}, len(history))
	for _, entry := range history {
		if key, ok := entry.Key(); ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, entry)
	}
	return out
}
