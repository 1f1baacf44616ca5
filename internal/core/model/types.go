package model

import (
	"sort"
	"time"
)

// TankRecord is one telemetry sample. It is kept as a raw JSON object so
// fields this tool does not interpret survive a persist/load round trip.
type TankRecord map[string]interface{}

// Key identifies the sample in time: the stop time when set, else the
// generic timestamp. ok is false when neither is a non-empty string.
func (r TankRecord) Key() (key string, ok bool) {
	if s := r.String(FieldStopTime); s != "" {
		return s, true
	}
	if s := r.String(FieldTimeStamp); s != "" {
		return s, true
	}
	return "", false
}

// SortKey is Key without the presence flag; keyless records sort as "".
func (r TankRecord) SortKey() string {
	key, _ := r.Key()
	return key
}

// String returns a string field, or "" when absent or not a string
func (r TankRecord) String(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// Value returns the raw field value, nil when absent
func (r TankRecord) Value(field string) interface{} {
	return r[field]
}

// LevelValue returns Level, falling back to level when Level is absent or null
func (r TankRecord) LevelValue() interface{} {
	if v, ok := r[FieldLevel]; ok && v != nil {
		return v
	}
	return r[FieldLevelAlt]
}

// Clone returns a shallow copy; nested values are shared.
func (r TankRecord) Clone() TankRecord {
	out := make(TankRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Snapshot is the full set of records returned by one successful poll
type Snapshot struct {
	Records   []TankRecord
	Payload   []byte // canonical encoding used for change detection
	FetchedAt time.Time
}

// HistoryLog holds accepted Batch-Out events, newest first
type HistoryLog []TankRecord

// Clone copies the slice so callers can't reorder the owner's log
func (h HistoryLog) Clone() HistoryLog {
	out := make(HistoryLog, len(h))
	copy(out, h)
	return out
}

// SortNewestFirst orders the log descending by key
func (h HistoryLog) SortNewestFirst() {
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].SortKey() > h[j].SortKey()
	})
}

// SortOldestFirst returns a copy of records ordered ascending by key
func SortOldestFirst(records []TankRecord) []TankRecord {
	out := make([]TankRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// FileEvent represents a file system event on the history store
type FileEvent struct {
	Path      string
	Operation string
}

// InteractionState represents the current UI interaction state
type InteractionState struct {
	IsPaused      bool
	ShowHelp      bool
	LayoutStyle   int
	Page          int // 1-based history page
	StatusMessage string
}

// DashboardView is everything one frame of the live view shows
type DashboardView struct {
	Live           []TankRecord
	History        HistoryLog
	Endpoint       string
	StoreName      string
	LastUpdate     time.Time
	NextRefresh    time.Time
	IsLoading      bool
	LoadingMessage string
	ErrorMessage   string
	State          InteractionState
}

// LayoutParam carries rendering settings that are not part of the data
type LayoutParam struct {
	Width    int
	PageSize int
	Now      time.Time
}
