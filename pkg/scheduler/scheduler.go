// Package scheduler runs a single recurring task on a fixed interval. It
// exists so the growth engine can be driven by a mock clock in tests and by
// the wall clock in production.
package scheduler

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"instagrowth/pkg/logger"
)

// Scheduler drives one periodic task. It is safe for concurrent use; Start,
// Reschedule, and Stop may be called from any goroutine.
type Scheduler struct {
	clock  clock.Clock
	logger logger.Logger

	mu         sync.Mutex
	running    bool
	stop       chan struct{}
	done       chan struct{}
	reschedule chan time.Duration
}

// New creates a scheduler. Pass clock.New() for real time or a mock clock in
// tests.
func New(clk clock.Clock, log logger.Logger) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &Scheduler{clock: clk, logger: log}
}

// Start begins firing task every interval. The first firing happens one full
// interval after Start, not immediately. Calling Start while running restarts
// the loop with the new task and interval.
func (s *Scheduler) Start(interval time.Duration, task func()) {
	s.Stop()

	s.mu.Lock()
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.reschedule = make(chan time.Duration, 1)
	stop, done, resched := s.stop, s.done, s.reschedule
	s.mu.Unlock()

	go s.loop(interval, task, stop, done, resched)
}

// Reschedule changes the firing interval of the running task. The current
// wait is abandoned; the next firing is one new interval from now. A stopped
// scheduler ignores the call.
func (s *Scheduler) Reschedule(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	select {
	case s.reschedule <- interval:
	default:
		// A pending reschedule already queued, drop it for this one.
		select {
		case <-s.reschedule:
		default:
		}
		s.reschedule <- interval
	}
}

// Stop halts the loop and waits for any in-flight task run to finish. It is
// safe to call on a stopped scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) loop(interval time.Duration, task func(), stop chan struct{}, done chan struct{}, resched chan time.Duration) {
	defer close(done)

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case next := <-resched:
			ticker.Stop()
			ticker = s.clock.Ticker(next)
		case <-ticker.C:
			s.run(task)
		}
	}
}

// run executes one firing. A panicking task is logged and the loop keeps
// going; one bad tick must not kill the simulation.
func (s *Scheduler) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorWithFields("scheduled task panicked", map[string]interface{}{
				"panic": r,
			})
		}
	}()
	task()
}
