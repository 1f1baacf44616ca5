package monitor

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/config"
	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
	"github.com/penwyp/go-brewpub-monitor/internal/core/model"
	"github.com/penwyp/go-brewpub-monitor/internal/data/store"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-brewpub-monitor/internal/presentation/layout"
	"github.com/penwyp/go-brewpub-monitor/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	mu      sync.Mutex
	frames  []model.DashboardView
	clears  int
	entered bool
}

func (d *fakeDisplay) EnterAlternateScreen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entered = true
}

func (d *fakeDisplay) ExitAlternateScreen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entered = false
}

func (d *fakeDisplay) ClearScreen() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clears++
}

func (d *fakeDisplay) RenderWithState(view model.DashboardView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, view)
}

func (d *fakeDisplay) lastFrame() model.DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames[len(d.frames)-1]
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.RefreshInterval = time.Hour
	cfg.PageSize = 2
	return cfg
}

func newTestOrchestrator(t *testing.T, st store.HistoryStore) (*Orchestrator, *fakeFetcher, *fakeDisplay) {
	t.Helper()
	fetcher := &fakeFetcher{}
	disp := &fakeDisplay{}
	o := newOrchestrator(testConfig(), st, fetcher, batchout.NewTracker(st), disp)
	return o, fetcher, disp
}

func charKey(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Type: interaction.KeyChar, Key: r}
}

func TestPollOnce(t *testing.T) {
	st := &memStore{}
	o, fetcher, _ := newTestOrchestrator(t, st)
	fetcher.push(fixtures.NewSnapshotGenerator("S1").Drain("FV-1", testStart, 100, 10, 3), nil)

	result, err := o.PollOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, result.Accepted)
	assert.Len(t, st.history, 3)
}

func TestPollOnceError(t *testing.T) {
	o, fetcher, _ := newTestOrchestrator(t, &memStore{})
	fetcher.push(nil, assert.AnError)

	_, err := o.PollOnce(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHandleKeyboardQuit(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &memStore{})

	assert.True(t, o.handleKeyboard(charKey('q')))
	assert.True(t, o.handleKeyboard(charKey('Q')))
	assert.True(t, o.handleKeyboard(charKey(3)))
	assert.True(t, o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyEscape}))
	assert.False(t, o.handleKeyboard(charKey('x')))
}

func TestHandleKeyboardHelp(t *testing.T) {
	o, _, disp := newTestOrchestrator(t, &memStore{})

	assert.False(t, o.handleKeyboard(charKey('h')))
	assert.True(t, o.stateManager.GetInteractionState().ShowHelp)

	// Esc closes help instead of quitting
	assert.False(t, o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyEscape}))
	assert.False(t, o.stateManager.GetInteractionState().ShowHelp)
	assert.Equal(t, 2, disp.clears)
}

func TestHandleKeyboardPause(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &memStore{})

	o.handleKeyboard(charKey('p'))
	assert.True(t, o.scheduler.Paused())
	assert.True(t, o.stateManager.GetInteractionState().IsPaused)

	o.handleKeyboard(charKey('P'))
	assert.False(t, o.scheduler.Paused())
	assert.False(t, o.stateManager.GetInteractionState().IsPaused)
}

func TestHandleKeyboardLayout(t *testing.T) {
	o, _, _ := newTestOrchestrator(t, &memStore{})
	start := o.stateManager.GetInteractionState().LayoutStyle

	o.handleKeyboard(charKey('t'))
	assert.Equal(t, layout.NextStyle(start), o.stateManager.GetInteractionState().LayoutStyle)
}

func TestHandleKeyboardPaging(t *testing.T) {
	gen := fixtures.NewSnapshotGenerator("S1")
	st := &memStore{history: model.HistoryLog(gen.Drain("FV-1", testStart, 100, 5, 5))}
	o, _, _ := newTestOrchestrator(t, st)
	page := func() int { return o.stateManager.GetInteractionState().Page }

	// 5 events at 2 per page is 3 pages
	o.handleKeyboard(charKey('n'))
	assert.Equal(t, 2, page())
	o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyRight})
	assert.Equal(t, 3, page())
	o.handleKeyboard(charKey('n'))
	assert.Equal(t, 3, page())

	o.handleKeyboard(charKey('b'))
	assert.Equal(t, 2, page())
	o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyLeft})
	o.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyLeft})
	assert.Equal(t, 1, page())
}

func TestUpdateDisplayFillsSourceDetails(t *testing.T) {
	o, _, disp := newTestOrchestrator(t, &memStore{})

	o.updateDisplay()

	frame := disp.lastFrame()
	assert.Equal(t, config.DefaultEndpoint, frame.Endpoint)
	assert.Equal(t, "memory", frame.StoreName)
}

func TestRunHeadlessRecordsUntilCancelled(t *testing.T) {
	st := &memStore{}
	o, fetcher, _ := newTestOrchestrator(t, st)
	fetcher.push(fixtures.NewSnapshotGenerator("S1").Drain("FV-1", testStart, 100, 10, 2), nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- o.RunHeadless(ctx) }()

	assert.Eventually(t, func() bool { return st.saveCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunHeadless did not stop")
	}
	assert.Len(t, o.tracker.History(), 2)
}

func TestRunHeadlessReloadsAfterExternalClear(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	o, fetcher, _ := newTestOrchestrator(t, fs)
	fetcher.push(fixtures.NewSnapshotGenerator("S1").Drain("FV-1", testStart, 100, 10, 2), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- o.RunHeadless(ctx) }()

	require.Eventually(t, func() bool { return len(o.tracker.History()) == 2 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, err := os.Stat(fs.Path())
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, fs.Clear())

	assert.Eventually(t, func() bool { return len(o.tracker.History()) == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return o.stateManager.GetInteractionState().StatusMessage == "History reloaded (0 events)"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-errCh)
}
