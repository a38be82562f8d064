// Package scheduler re-triggers the aggregation pipeline on a fixed
// interval. Retry and backoff live here, outside the core run: a failed run
// is simply reported and picked up again on the next tick.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/radar/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner executes one aggregation pass
type Runner interface {
	Run(ctx context.Context) domain.RunResult
}

// Scheduler invokes the runner periodically
type Scheduler struct {
	runner   Runner
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// New creates a scheduler, interval defaults to 30 minutes
func New(runner Runner, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = 30 * time.Minute
	}
	return &Scheduler{runner: runner, interval: interval}
}

// Start begins the trigger loop, running once immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(ctx)

	lgr.Printf("[INFO] scheduler started with interval %v", s.interval)
}

// Stop gracefully stops the scheduler, waiting for an in-flight run
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	result := s.runner.Run(ctx)
	if !result.OK() {
		lgr.Printf("[WARN] aggregation run had %d errors: %v", len(result.Errors), result.Errors)
	}
}
