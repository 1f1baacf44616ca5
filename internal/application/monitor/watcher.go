package monitor

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/util"
)

// HistoryWatcher reports when the history file is changed or removed by
// another process. The store replaces the file by renaming a temp file over
// it, which shows up as a create on the path and is not reported.
type HistoryWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan model.FileEvent
	done    chan struct{}
}

// NewHistoryWatcher watches the directory holding path so the file may be
// deleted and recreated without losing the watch.
func NewHistoryWatcher(path string) (*HistoryWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch history directory: %w", err)
	}

	hw := &HistoryWatcher{
		watcher: watcher,
		path:    absPath,
		// one pending event is enough, a reload reads the latest content
		events: make(chan model.FileEvent, 1),
		done:   make(chan struct{}),
	}
	go hw.processEvents()
	return hw, nil
}

func (hw *HistoryWatcher) processEvents() {
	defer close(hw.done)
	for {
		select {
		case event, ok := <-hw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != hw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			select {
			case hw.events <- model.FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
			}

		case err, ok := <-hw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("History file monitoring error", util.F("error", err))
		}
	}
}

func (hw *HistoryWatcher) Events() <-chan model.FileEvent {
	return hw.events
}

func (hw *HistoryWatcher) Close() error {
	err := hw.watcher.Close()
	<-hw.done
	return err
}
