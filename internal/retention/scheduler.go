// Package retention runs the server-side tombstone sweep. The dashboard
// already purges opportunistically per user, but that only fires when the
// user shows up; the nightly cron closes the gap so the retention window is
// honored even for dormant accounts.
package retention

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kjbranchesi/alf-coach-backend/internal/blueprints/repository"
	"github.com/kjbranchesi/alf-coach-backend/internal/logging"
)

const sweepTimeout = 5 * time.Minute

type Scheduler struct {
	repo      repository.Repository
	retention time.Duration
	spec      string
	log       *logging.Logger
	cron      *cron.Cron
}

func NewScheduler(repo repository.Repository, retention time.Duration, spec string, log *logging.Logger) *Scheduler {
	return &Scheduler{
		repo:      repo,
		retention: retention,
		spec:      spec,
		log:       log,
	}
}

// Start registers the nightly sweep and starts the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(s.spec, s.sweep); err != nil {
		return err
	}

	s.log.Info("retention scheduler started", "spec", s.spec, "window", s.retention.String())
	c.Start()
	s.cron = c
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Sweep runs one purge pass immediately. Exposed for the worker's --once
// mode and for tests.
func (s *Scheduler) Sweep() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	return s.repo.PurgeAllExpired(ctx, s.retention)
}

func (s *Scheduler) sweep() {
	purged, err := s.Sweep()
	if err != nil {
		s.log.Error("retention sweep failed", "error", err)
		return
	}
	s.log.Info("retention sweep complete", "purged", purged)
}
