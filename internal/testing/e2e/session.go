// Package e2e drives the built binary inside a pseudo terminal so the live
// view can be exercised the way a user sees it.
package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

// SessionConfig describes the process to start
type SessionConfig struct {
	Command string
	Args    []string
	Env     []string

	Rows uint16
	Cols uint16

	// Timeout bounds the whole session
	Timeout time.Duration
}

// Session is a running process attached to a PTY
type Session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	cancel context.CancelFunc

	mu     sync.RWMutex
	output bytes.Buffer

	exited chan struct{}
	err    error
}

// BuildBinary compiles the main package at pkgDir into dir and returns its path
func BuildBinary(pkgDir, dir string) (string, error) {
	out := filepath.Join(dir, "go-brewpub-monitor")
	build := exec.Command("go", "build", "-o", out, ".")
	build.Dir = pkgDir
	if output, err := build.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build failed: %w\n%s", err, output)
	}
	return out, nil
}

// Start launches the command with a terminal of the configured size
func Start(config SessionConfig) (*Session, error) {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.Rows == 0 {
		config.Rows = 40
	}
	if config.Cols == 0 {
		config.Cols = 140
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	cmd := exec.CommandContext(ctx, config.Command, config.Args...)
	cmd.Env = append(os.Environ(), config.Env...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: config.Rows, Cols: config.Cols})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	s := &Session{
		cmd:    cmd,
		ptmx:   ptmx,
		cancel: cancel,
		exited: make(chan struct{}),
	}
	go s.capture()
	go func() {
		s.err = cmd.Wait()
		close(s.exited)
	}()
	return s, nil
}

func (s *Session) capture() {
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw input to the terminal
func (s *Session) SendKeys(keys string) error {
	_, err := s.ptmx.Write([]byte(keys))
	return err
}

// Output returns everything written so far without escape codes
func (s *Session) Output() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StripANSI(s.output.String())
}

// WaitForText polls the output until text appears
func (s *Session) WaitForText(text string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("timeout waiting for text %q", text)
}

// WaitExit waits for the process to exit on its own
func (s *Session) WaitExit(timeout time.Duration) error {
	select {
	case <-s.exited:
		return s.err
	case <-time.After(timeout):
		return fmt.Errorf("process still running after %s", timeout)
	}
}

// Close kills the process if needed and releases the terminal
func (s *Session) Close() {
	s.cancel()
	<-s.exited
	s.ptmx.Close()
}
