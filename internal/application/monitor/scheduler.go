package monitor

import (
	"context"
	"sync"
	"time"
)

// Job runs on the scheduler goroutine
type Job func(ctx context.Context)

// Scheduler runs a tick job on a single goroutine. The next tick is armed
// only after the current one returns, so ticks never overlap and a slow
// tick delays the following one instead of piling up. Jobs handed to
// Enqueue run on the same goroutine between ticks.
type Scheduler struct {
	interval time.Duration
	tick     Job

	mu      sync.Mutex
	started bool
	paused  bool
	runNow  bool
	nextRun time.Time

	wakeCh    chan struct{}
	jobs      chan Job
	done      chan struct{}
	startOnce sync.Once
}

// NewScheduler creates a scheduler whose first tick runs as soon as it starts
func NewScheduler(interval time.Duration, tick Job) *Scheduler {
	return &Scheduler{
		interval: interval,
		tick:     tick,
		runNow:   true,
		wakeCh:   make(chan struct{}, 1),
		jobs:     make(chan Job, 16),
		done:     make(chan struct{}),
	}
}

// Start launches the scheduler goroutine. It stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		s.mu.Lock()
		s.started = true
		s.mu.Unlock()
		go s.loop(ctx)
	})
}

// Wait blocks until the scheduler goroutine exits. It returns at once if
// the scheduler was never started.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.done
	}
}

// Done is closed once the scheduler goroutine has exited
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// Pause stops ticking. A tick already running completes.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	s.paused = true
	s.nextRun = time.Time{}
	s.mu.Unlock()
	s.wake()
}

// Resume runs a tick immediately and restarts the cadence
func (s *Scheduler) Resume() {
	s.mu.Lock()
	if !s.paused {
		s.mu.Unlock()
		return
	}
	s.paused = false
	s.runNow = true
	s.mu.Unlock()
	s.wake()
}

// Trigger runs one tick as soon as possible, even while paused
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	s.runNow = true
	s.mu.Unlock()
	s.wake()
}

// Enqueue hands job to the scheduler goroutine. It is dropped once the
// scheduler has stopped.
func (s *Scheduler) Enqueue(job Job) {
	select {
	case s.jobs <- job:
	case <-s.done:
	}
}

// Paused reports whether ticking is paused
func (s *Scheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// NextRun is when the next tick is due; zero while paused or ticking
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

func (s *Scheduler) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(s.interval)
	timer.Stop()
	defer timer.Stop()

	for {
		ran := false
		if s.takeRunNow() {
			s.tick(ctx)
			ran = true
			if ctx.Err() != nil {
				return
			}
		}
		s.arm(timer, ran)

		select {
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			job(ctx)
		case <-s.wakeCh:
		case <-timer.C:
			s.mu.Lock()
			if !s.paused {
				s.runNow = true
			}
			s.mu.Unlock()
		}
	}
}

func (s *Scheduler) takeRunNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := s.runNow
	s.runNow = false
	if run {
		s.nextRun = time.Time{}
	}
	return run
}

// arm restarts the countdown after a tick, or stops it while paused
func (s *Scheduler) arm(timer *time.Timer, ran bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.paused {
		timer.Stop()
		s.nextRun = time.Time{}
		return
	}
	if ran {
		timer.Reset(s.interval)
		s.nextRun = time.Now().Add(s.interval)
	}
}
