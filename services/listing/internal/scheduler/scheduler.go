package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"classifieds/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Sweeper is the part of the lifecycle use case the scheduler drives.
type Sweeper interface {
	ExpireOld(ctx context.Context) (int64, error)
	ExpireFeatured(ctx context.Context) (int64, error)
}

// Scheduler runs the expiration sweeps on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	logger  *logger.Logger
	timeout time.Duration

	mu      sync.Mutex
	running bool
}

func New(sweeper Sweeper, log *logger.Logger, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		sweeper: sweeper,
		logger:  log,
		timeout: timeout,
	}
}

// Start registers the sweep under spec (standard cron or "@every 10m").
func (s *Scheduler) Start(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_ = s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("invalid expire schedule %q: %w", spec, err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("Expiration scheduler started (schedule: %s)", spec)
	return nil
}

// Stop waits for a sweep in progress to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.logger.Info("Expiration scheduler stopped")
}

// RunOnce expires overdue listings, then clears lapsed featured flags. The
// featured sweep still runs when the first one fails.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	expired, expireErr := s.sweeper.ExpireOld(ctx)
	if expireErr != nil {
		s.logger.Error("Expiration sweep failed after %d listings: %v", expired, expireErr)
	}

	unfeatured, featuredErr := s.sweeper.ExpireFeatured(ctx)
	if featuredErr != nil {
		s.logger.Error("Featured sweep failed: %v", featuredErr)
	}

	s.logger.Info("Sweep finished: %d expired, %d unfeatured", expired, unfeatured)

	if expireErr != nil {
		return expireErr
	}
	return featuredErr
}
