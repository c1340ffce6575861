// Package schedule runs the reporting cycle on a cron expression in daemon
// mode. Cycles never overlap: a new one is skipped while the previous is
// still running.
package schedule

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers the reporting cycle per its cron expression.
type Scheduler struct {
	expr    string
	parser  cron.Parser
	lastRun time.Time
	running bool
	mu      sync.RWMutex
}

// New creates a Scheduler and validates the cron expression.
func New(expr string) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(expr); err != nil {
		return nil, err
	}
	return &Scheduler{expr: expr, parser: parser}, nil
}

// NextRun returns the next scheduled cycle time.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sched, err := s.parser.Parse(s.expr)
	if err != nil {
		return time.Time{}
	}
	return sched.Next(time.Now())
}

// ShouldRun returns true if a cycle is due and none is in flight.
func (s *Scheduler) ShouldRun() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.running {
		return false
	}

	sched, err := s.parser.Parse(s.expr)
	if err != nil {
		return false
	}

	lastRun := s.lastRun
	if lastRun.IsZero() {
		lastRun = time.Now().Add(-24 * time.Hour)
	}

	return time.Now().After(sched.Next(lastRun))
}

// MarkRunning marks a cycle as in flight.
func (s *Scheduler) MarkRunning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
}

// MarkComplete records the cycle end.
func (s *Scheduler) MarkComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.lastRun = time.Now()
}

// Start polls once a minute and invokes runFunc when a cycle is due. The
// cycle itself runs synchronously inside the loop; checks stay strictly
// sequential.
func (s *Scheduler) Start(ctx context.Context, runFunc func() error) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.ShouldRun() {
				continue
			}
			s.MarkRunning()
			if err := runFunc(); err != nil {
				log.Printf("scheduled run failed: %v", err)
			}
			s.MarkComplete()
		}
	}
}
