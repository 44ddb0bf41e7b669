package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/config"
	reminderdomain "github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
)

type stubReminderService struct {
	calls int
	stats reminderdomain.CycleStats
	err   error
}

func (s *stubReminderService) Preview(context.Context, string) (reminderdomain.Evaluation, error) {
	return reminderdomain.Evaluation{}, nil
}

func (s *stubReminderService) RunCycle(context.Context) (reminderdomain.CycleStats, error) {
	s.calls++
	return s.stats, s.err
}

func newTestScheduler(svc reminderdomain.Service) *Scheduler {
	return New(Params{
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
		Config: config.Config{
			Scheduler: config.SchedulerConfig{
				Enabled:      true,
				Interval:     time.Minute,
				CycleTimeout: 5 * time.Minute,
				BatchSize:    100,
			},
		},
		ReminderSvc: svc,
	})
}

func TestRunOnceInvokesCycle(t *testing.T) {
	svc := &stubReminderService{
		stats: reminderdomain.CycleStats{Clinics: 2, Dispatched: 3},
	}

	err := newTestScheduler(svc).RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, svc.calls)
}

func TestRunOncePropagatesCycleError(t *testing.T) {
	svc := &stubReminderService{err: errors.New("db unavailable")}

	err := newTestScheduler(svc).RunOnce(context.Background())
	require.ErrorContains(t, err, "db unavailable")
}

func TestRunForeverStopsOnCancel(t *testing.T) {
	svc := &stubReminderService{}
	sched := newTestScheduler(svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		sched.RunForever(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunForever did not stop after cancel")
	}

	// The immediate first cycle still runs before the loop observes
	// cancellation.
	require.Equal(t, 1, svc.calls)
}
