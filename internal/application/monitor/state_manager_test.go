package monitor

import (
	"testing"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestStateManagerDefaults(t *testing.T) {
	sm := NewStateManager()

	assert.Empty(t, sm.GetLiveRecords())
	assert.Empty(t, sm.GetHistory())
	assert.True(t, sm.GetLastUpdate().IsZero())
	assert.Equal(t, 1, sm.GetInteractionState().Page)
	assert.Empty(t, sm.GetError())
}

func TestStateManagerView(t *testing.T) {
	sm := NewStateManager()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	sm.SetSnapshot([]model.TankRecord{{model.FieldTankName: "FV-1"}}, now)
	sm.SetHistory(model.HistoryLog{{model.FieldTimeStamp: "2024-01-01T09:00:00"}})
	sm.SetLoadingState(true, "Refreshing data...")
	sm.SetError("boom")
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.IsPaused = true
		s.Page = 3
	})

	view := sm.View()
	assert.Len(t, view.Live, 1)
	assert.Len(t, view.History, 1)
	assert.Equal(t, now, view.LastUpdate)
	assert.True(t, view.IsLoading)
	assert.Equal(t, "Refreshing data...", view.LoadingMessage)
	assert.Equal(t, "boom", view.ErrorMessage)
	assert.True(t, view.State.IsPaused)
	assert.Equal(t, 3, view.State.Page)
}

func TestStateManagerReturnsCopies(t *testing.T) {
	sm := NewStateManager()
	sm.SetSnapshot([]model.TankRecord{{model.FieldTankName: "FV-1"}}, time.Now())
	sm.SetHistory(model.HistoryLog{{model.FieldTimeStamp: "a"}, {model.FieldTimeStamp: "b"}})

	live := sm.GetLiveRecords()
	live[0] = model.TankRecord{}
	history := sm.GetHistory()
	history[0], history[1] = history[1], history[0]

	assert.Equal(t, "FV-1", sm.GetLiveRecords()[0].String(model.FieldTankName))
	assert.Equal(t, "a", sm.GetHistory()[0].SortKey())
}
