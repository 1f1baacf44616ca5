package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTankRecordKey(t *testing.T) {
	tests := []struct {
		name    string
		record  TankRecord
		wantKey string
		wantOK  bool
	}{
		{
			name:    "stop time wins",
			record:  TankRecord{FieldStopTime: "2024-01-01T10:05:00", FieldTimeStamp: "2024-01-01T10:00:00"},
			wantKey: "2024-01-01T10:05:00",
			wantOK:  true,
		},
		{
			name:    "falls back to timestamp",
			record:  TankRecord{FieldTimeStamp: "2024-01-01T10:00:00"},
			wantKey: "2024-01-01T10:00:00",
			wantOK:  true,
		},
		{
			name:    "empty stop time falls back",
			record:  TankRecord{FieldStopTime: "", FieldTimeStamp: "2024-01-01T10:00:00"},
			wantKey: "2024-01-01T10:00:00",
			wantOK:  true,
		},
		{
			name:   "no key fields",
			record: TankRecord{FieldLevel: 10.0},
			wantOK: false,
		},
		{
			name:   "non string timestamp",
			record: TankRecord{FieldTimeStamp: 1704103200.0},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := tt.record.Key()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestTankRecordLevelValue(t *testing.T) {
	assert.Equal(t, 12.0, TankRecord{FieldLevel: 12.0, FieldLevelAlt: 99.0}.LevelValue())
	assert.Equal(t, 99.0, TankRecord{FieldLevel: nil, FieldLevelAlt: 99.0}.LevelValue())
	assert.Equal(t, "7", TankRecord{FieldLevelAlt: "7"}.LevelValue())
	assert.Nil(t, TankRecord{}.LevelValue())
}

func TestHistoryLogOrdering(t *testing.T) {
	log := HistoryLog{
		{FieldTimeStamp: "2024-01-01T10:00:00"},
		{FieldTimeStamp: "2024-01-03T10:00:00"},
		{FieldTimeStamp: "2024-01-02T10:00:00"},
	}
	log.SortNewestFirst()

	assert.Equal(t, "2024-01-03T10:00:00", log[0].SortKey())
	assert.Equal(t, "2024-01-02T10:00:00", log[1].SortKey())
	assert.Equal(t, "2024-01-01T10:00:00", log[2].SortKey())
	assert.True(t, log.Contains("2024-01-02T10:00:00"))
	assert.False(t, log.Contains("2024-01-04T10:00:00"))
}

func TestSortOldestFirstDoesNotMutateInput(t *testing.T) {
	in := []TankRecord{
		{FieldTimeStamp: "b"},
		{FieldTimeStamp: "a"},
		{FieldLevel: 1.0},
	}
	out := SortOldestFirst(in)

	assert.Equal(t, "", out[0].SortKey())
	assert.Equal(t, "a", out[1].SortKey())
	assert.Equal(t, "b", out[2].SortKey())
	assert.Equal(t, "b", in[0].SortKey())
}

func TestCloneIsIndependent(t *testing.T) {
	rec := TankRecord{FieldTankName: "T1"}
	cp := rec.Clone()
	cp[FieldTankName] = "T2"
	assert.Equal(t, "T1", rec.String(FieldTankName))

	log := HistoryLog{rec}
	logCopy := log.Clone()
	logCopy[0] = TankRecord{}
	assert.Equal(t, "T1", log[0].String(FieldTankName))
}
