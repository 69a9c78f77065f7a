package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
)

// Purger drops page cache bookkeeping for entries Redis already expired.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	purger  Purger
	spec    string
	timeout time.Duration
	log     *logging.Logger
}

// NewScheduler builds a scheduler running the cache purge on spec, a
// six-field cron expression (seconds first).
func NewScheduler(spec string, purger Purger, log *logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		purger:  purger,
		spec:    spec,
		timeout: 30 * time.Second,
		log:     log.Named("cron"),
	}
}

// Start registers the purge job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("failed to create cron job %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.log.Info("cron_start", "cron scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the scheduler and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs a single purge.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.purger.Purge(ctx)
	if err != nil {
		s.log.Error("cache_purge", err)
		return
	}
	s.log.Info("cache_purge", "page cache purged", zap.Int("removed", n))
}
