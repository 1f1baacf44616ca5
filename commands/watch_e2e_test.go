//go:build e2e
// +build e2e

package commands

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/penwyp/go-brewpub-monitor/internal/data/store"
	"github.com/penwyp/go-brewpub-monitor/internal/testing/e2e"
	"github.com/penwyp/go-brewpub-monitor/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchLiveView(t *testing.T) {
	binary, err := e2e.BuildBinary("..", t.TempDir())
	require.NoError(t, err)

	payload := fixtures.Payload(fixtures.NewSnapshotGenerator("S1").Drain("FV-1", testStart, 100, 10, 3))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	home := t.TempDir()
	dataDir := t.TempDir()
	session, err := e2e.Start(e2e.SessionConfig{
		Command: binary,
		Args:    []string{"watch", "--endpoint", srv.URL, "--data-dir", dataDir},
		Env:     []string{fmt.Sprintf("HOME=%s", home)},
	})
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.WaitForText("BREW PUB BATCH-OUT MONITOR", 5*time.Second), session.Output())
	require.NoError(t, session.WaitForText("Recorded 3 new batch-out event(s)", 5*time.Second), session.Output())

	require.NoError(t, session.SendKeys("p"))
	require.NoError(t, session.WaitForText("Paused", 3*time.Second), session.Output())

	require.NoError(t, session.SendKeys("q"))
	require.NoError(t, session.WaitExit(5*time.Second))

	fs, err := store.NewFileStore(dataDir)
	require.NoError(t, err)
	history, err := fs.Load()
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestWatchHeadlessStopsOnInterrupt(t *testing.T) {
	binary, err := e2e.BuildBinary("..", t.TempDir())
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	session, err := e2e.Start(e2e.SessionConfig{
		Command: binary,
		Args:    []string{"watch", "--headless", "--endpoint", srv.URL, "--data-dir", t.TempDir()},
		Env:     []string{fmt.Sprintf("HOME=%s", t.TempDir())},
	})
	require.NoError(t, err)
	defer session.Close()

	time.Sleep(500 * time.Millisecond)
	// Ctrl+C through the terminal line discipline
	require.NoError(t, session.SendKeys("\x03"))
	assert.NoError(t, session.WaitExit(5*time.Second))
}
