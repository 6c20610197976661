// Package schedule repeats the full pipeline on a cron expression for
// `pipeline --schedule "<cron>"` (spec §6), wrapping go-co-op/gocron the
// way the teacher's internal/scheduler wraps it for recurring scrape jobs.
package schedule

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/rkaplan/x987scout/internal/logging"
)

var log = logging.New("schedule")

// Scheduler runs a single recurring job, guarding against overlapping
// runs the way the teacher's ScheduleJob checks job.Status before
// dispatching another run.
type Scheduler struct {
	inner   *gocron.Scheduler
	mu      sync.Mutex
	running bool
}

// New creates a scheduler ticking in UTC, matching the teacher's
// InitScheduler.
func New() *Scheduler {
	return &Scheduler{inner: gocron.NewScheduler(time.UTC)}
}

// Start begins the scheduler's background tick loop.
func (s *Scheduler) Start() {
	s.inner.StartAsync()
}

// Stop halts the scheduler; in-flight runs are not interrupted.
func (s *Scheduler) Stop() {
	s.inner.Stop()
}

// ScheduleCron registers fn to run on every cronExpr tick, skipping a tick
// if the previous run is still in flight.
func (s *Scheduler) ScheduleCron(cronExpr string, fn func()) error {
	_, err := s.inner.Cron(cronExpr).Do(func() {
		s.mu.Lock()
		if s.running {
			s.mu.Unlock()
			log.Warn("scheduled run skipped: previous run still in progress")
			return
		}
		s.running = true
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
		}()

		fn()
	})
	return err
}
