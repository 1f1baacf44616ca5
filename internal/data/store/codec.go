package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
)

// ErrCorruptHistory is returned when a persisted slot can't be decoded
var ErrCorruptHistory = errors.New("corrupt batch-out history")

// decodeHistory parses a persisted slot. Empty input and JSON null are an
// empty log; anything that is not an array of objects is corrupt.
func decodeHistory(data []byte) (model.HistoryLog, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return model.HistoryLog{}, nil
	}

	var history model.HistoryLog
	if err := sonic.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	if history == nil {
		history = model.HistoryLog{}
	}
	return history, nil
}

func encodeHistory(history model.HistoryLog) ([]byte, error) {
	if history == nil {
		history = model.HistoryLog{}
	}
	data, err := sonic.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to encode batch-out history: %w", err)
	}
	return data, nil
}
