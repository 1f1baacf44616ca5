// Package batchout infers Batch-Out (dispense) events from a polled tank
// level feed and keeps them as a deduplicated, newest-first history.
package batchout

import (
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/core/volume"
)

// MinVolume is the noise floor; readings at or below it are never recorded
const MinVolume = 0.01

// Decision explains what happened to one record of a batch
type Decision int

const (
	Accepted Decision = iota
	SkippedNoKey
	SkippedBelowMinimum
	SkippedDuplicate
	SkippedNotDecreasing
)

func (d Decision) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case SkippedNoKey:
		return "no-key"
	case SkippedBelowMinimum:
		return "below-minimum"
	case SkippedDuplicate:
		return "duplicate"
	case SkippedNotDecreasing:
		return "not-decreasing"
	default:
		return "unknown"
	}
}

// Outcome records the decision taken for a single record
type Outcome struct {
	Key      string
	Volume   float64
	Decision Decision
}

// TrackerState is the complete state owned by the tracker
type TrackerState struct {
	History model.HistoryLog
}

// Ingest folds one snapshot into state and returns the next state.
//
// Records are visited oldest first. Each one is compared with the entry at
// the front of the log as it stands at that moment, which includes records
// accepted earlier in the same batch. When nothing is accepted the input
// state is returned unchanged so callers can skip persisting.
func Ingest(state TrackerState, batch []model.TankRecord) (TrackerState, []Outcome) {
	outcomes := make([]Outcome, 0, len(batch))

	seen := make(map[string]struct{}, len(state.History)+len(batch))
	for _, entry := range state.History {
		if key, ok := entry.Key(); ok {
			seen[key] = struct{}{}
		}
	}

	var (
		hasHead   = len(state.History) > 0
		headValue float64
		accepted  []model.TankRecord
	)
	if hasHead {
		headValue = volume.Derive(state.History[0])
	}

	for _, record := range model.SortOldestFirst(batch) {
		key, ok := record.Key()
		if !ok {
			outcomes = append(outcomes, Outcome{Decision: SkippedNoKey})
			continue
		}

		v := volume.Derive(record)
		outcome := Outcome{Key: key, Volume: v}

		switch {
		case v <= MinVolume:
			outcome.Decision = SkippedBelowMinimum
		case contains(seen, key):
			outcome.Decision = SkippedDuplicate
		case hasHead && v >= headValue:
			outcome.Decision = SkippedNotDecreasing
		default:
			outcome.Decision = Accepted
			accepted = append(accepted, record)
			seen[key] = struct{}{}
			headValue, hasHead = v, true
		}
		outcomes = append(outcomes, outcome)
	}

	if len(accepted) == 0 {
		return state, outcomes
	}

	next := make(model.HistoryLog, 0, len(accepted)+len(state.History))
	for i := len(accepted) - 1; i >= 0; i-- {
		next = append(next, accepted[i])
	}
	next = append(next, state.History...)
	next.SortNewestFirst()

	return TrackerState{History: next}, outcomes
}

// AcceptedCount counts accepted outcomes
func AcceptedCount(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Decision == Accepted {
			n++
		}
	}
	return n
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
