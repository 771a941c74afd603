package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/mhartley/sqeprep/internal/logger"
)

// ChallengeRotator creates the challenge for the current date if missing.
type ChallengeRotator interface {
	EnsureToday(ctx context.Context) error
}

// Scheduler rotates the daily challenge at a fixed local time.
type Scheduler struct {
	cron    *gocron.Scheduler
	rotator ChallengeRotator
	at      string
	log     *logger.Logger
}

// New creates a scheduler that rotates the challenge at the given HH:MM time.
func New(rotator ChallengeRotator, at string) *Scheduler {
	return &Scheduler{
		cron:    gocron.NewScheduler(time.Local),
		rotator: rotator,
		at:      at,
		log:     logger.Default().WithPrefix("scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.Every(1).Day().At(s.at).Do(func() {
		runCtx := logger.NewContext(ctx, s.log)
		if err := s.rotator.EnsureToday(runCtx); err != nil {
			s.log.Error("daily challenge rotation failed: %v", err)
			return
		}
		s.log.Info("daily challenge rotated")
	})
	if err != nil {
		return err
	}

	s.cron.StartAsync()
	s.log.Info("daily challenge rotation scheduled at %s", s.at)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("scheduler stopped")
}
