// Package scheduler drives the periodic reminder dispatch cycle.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/config"
	reminderdomain "github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
)

const cycleLockKey = "vetsync:reminder_cycle"

type Params struct {
	fx.In

	Log         *zap.Logger
	Config      config.Config
	Clock       clock.Clock
	ReminderSvc reminderdomain.Service
	Locker      *Locker `optional:"true"`
}

type Scheduler struct {
	log         *zap.Logger
	cfg         config.SchedulerConfig
	clock       clock.Clock
	reminderSvc reminderdomain.Service
	locker      *Locker
}

func New(p Params) *Scheduler {
	return &Scheduler{
		log:         p.Log.Named("scheduler"),
		cfg:         p.Config.Scheduler,
		clock:       p.Clock,
		reminderSvc: p.ReminderSvc,
		locker:      p.Locker,
	}
}

// RunForever runs a dispatch cycle immediately and then once per
// interval until the context is cancelled.
func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("dispatch cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce runs a single dispatch cycle under the replica lock. When
// another replica holds the lock the cycle is skipped, not queued.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CycleTimeout)
	defer cancel()

	if s.locker != nil {
		token, acquired, err := s.locker.TryLock(ctx, cycleLockKey, s.cfg.CycleTimeout)
		if err != nil {
			return err
		}
		if !acquired {
			s.log.Debug("dispatch cycle held by another replica")
			return nil
		}
		defer func() {
			if err := s.locker.Release(context.WithoutCancel(ctx), cycleLockKey, token); err != nil {
				s.log.Warn("failed to release cycle lock", zap.Error(err))
			}
		}()
	}

	start := s.clock.Now()
	stats, err := s.reminderSvc.RunCycle(ctx)
	if err != nil {
		return err
	}

	s.log.Info("dispatch cycle complete",
		zap.Int("clinics", stats.Clinics),
		zap.Int("candidates", stats.Candidates),
		zap.Int("dispatched", stats.Dispatched),
		zap.Int("failures", stats.Failures),
		zap.Duration("elapsed", s.clock.Now().Sub(start)),
	)
	return nil
}
