package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// FileStore keeps the history as a JSON array in a single file
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates the directory if needed; the file itself is created on first save
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileStore{
		path: filepath.Join(dir, model.HistorySlot+".json"),
	}, nil
}

// Path returns the history file location
func (s *FileStore) Path() string {
	return s.path
}

// Describe names the backend for logs and status lines
func (s *FileStore) Describe() string {
	return "file:" + s.path
}

// Load reads the history file. A missing file is an empty history.
func (s *FileStore) Load() (model.HistoryLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug(fmt.Sprintf("History file not found: %s", s.path))
			return model.HistoryLog{}, nil
		}
		return nil, fmt.Errorf("failed to read history file %s: %w", s.path, err)
	}
	return decodeHistory(data)
}

// Save overwrites the history file through a temp file and rename
func (s *FileStore) Save(history model.HistoryLog) error {
	data, err := encodeHistory(history)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename history file: %w", err)
	}

	util.LogDebug(fmt.Sprintf("Saved %d batch-out entries to %s", len(history), s.path))
	return nil
}

// Clear removes the history file
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history file: %w", err)
	}
	return nil
}

// Close is a no-op for files
func (s *FileStore) Close() error {
	return nil
}
