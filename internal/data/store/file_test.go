package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "dir"))
	require.NoError(t, err)

	history, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Equal(t, "batch_out_records.json", filepath.Base(s.Path()))
}

func TestFileStoreRoundTripKeepsUnknownFields(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	in := model.HistoryLog{
		{"TimeStamp": "2024-01-02T00:00:00", "Level": 50.0, "Tank_name": "Fermenter 2", "custom": map[string]interface{}{"a": 1.0}},
		{"TimeStamp": "2024-01-01T00:00:00", "Level": "80"},
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Fermenter 2", out[0].String(model.FieldTankName))
	assert.Equal(t, map[string]interface{}{"a": 1.0}, out[0]["custom"])
	assert.Equal(t, "80", out[1][model.FieldLevel])

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		corrupt bool
	}{
		{name: "invalid json", content: "{not json", corrupt: true},
		{name: "object instead of array", content: `{"TimeStamp":"x"}`, corrupt: true},
		{name: "array of numbers", content: `[1,2,3]`, corrupt: true},
		{name: "null", content: "null"},
		{name: "blank", content: "  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewFileStore(t.TempDir())
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0644))

			history, err := s.Load()
			if tt.corrupt {
				assert.ErrorIs(t, err, ErrCorruptHistory)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestTrackerStartsEmptyOnCorruptFile(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(s.Path(), []byte("]]garbage"), 0644))

	tracker := batchout.NewTracker(s)
	assert.Equal(t, 0, tracker.Len())

	result := tracker.Ingest([]model.TankRecord{{"TimeStamp": "2024-01-01T10:00:00", "level": 100.0}})
	assert.Equal(t, 1, result.Accepted)
	require.NoError(t, result.SaveErr)

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, reloaded, 1)
}

func TestFileStoreClear(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Save(model.HistoryLog{{"TimeStamp": "a", "Volume": 1.0}}))
	require.NoError(t, s.Clear())

	history, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Contains(t, s.Describe(), "file:")
	assert.NoError(t, s.Close())
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(Options{Backend: "etcd"})
	assert.Error(t, err)

	s, err := New(Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
}

func TestNewRedisRequiresAddr(t *testing.T) {
	_, err := New(Options{Backend: BackendRedis})
	assert.Error(t, err)
}
