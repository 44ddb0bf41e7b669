package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/clinicctx"
	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/dispatch"
	obsmetrics "github.com/omarwahbi/VetSync-sub002/internal/observability/metrics"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/reminder/engine"
	"github.com/omarwahbi/VetSync-sub002/internal/timewindow"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/query"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	Builder    *query.Builder
	ClinicRepo clinicdomain.Repository
	VisitRepo  visitdomain.Repository
	PetRepo    petdomain.Repository
	OwnerRepo  ownerdomain.Repository
	Dispatcher dispatch.Provider
	Metrics    *obsmetrics.ReminderMetrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	builder    *query.Builder
	clinicRepo clinicdomain.Repository
	visitRepo  visitdomain.Repository
	petRepo    petdomain.Repository
	ownerRepo  ownerdomain.Repository
	dispatcher dispatch.Provider
	metrics    *obsmetrics.ReminderMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("reminder.service"),
		clock:      p.Clock,
		builder:    p.Builder,
		clinicRepo: p.ClinicRepo,
		visitRepo:  p.VisitRepo,
		petRepo:    p.PetRepo,
		ownerRepo:  p.OwnerRepo,
		dispatcher: p.Dispatcher,
		metrics:    p.Metrics,
	}
}

func (s *Service) Preview(ctx context.Context, visitID string) (domain.Evaluation, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Evaluation{}, domain.ErrInvalidClinic
	}

	id, err := snowflake.ParseString(strings.TrimSpace(visitID))
	if err != nil || id == 0 {
		return domain.Evaluation{}, domain.ErrInvalidID
	}

	clinic, err := s.clinicRepo.FindByID(ctx, s.db, clinicID)
	if err != nil {
		return domain.Evaluation{}, err
	}
	if clinic == nil {
		return domain.Evaluation{}, domain.ErrInvalidClinic
	}

	visit, err := s.visitRepo.FindByID(ctx, s.db, clinicID, id)
	if err != nil {
		return domain.Evaluation{}, err
	}
	if visit == nil {
		return domain.Evaluation{}, domain.ErrNotFound
	}

	now := s.clock.Now()
	zone := timewindow.ParseZone(clinic.Timezone, s.log)
	window := timewindow.ResolveDay(zone, now)
	period := domain.PeriodKey(zone, now)

	return domain.Evaluation{
		Decision: engine.EvaluateInWindow(*clinic, *visit, now, window, period),
		Window:   window,
		Period:   period,
	}, nil
}

func (s *Service) RunCycle(ctx context.Context) (domain.CycleStats, error) {
	stats := domain.CycleStats{Denied: map[domain.DeniedReason]int{}}

	clinics, err := s.clinicRepo.ListActive(ctx, s.db)
	if err != nil {
		return stats, err
	}

	for _, clinic := range clinics {
		if clinic == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Clinics++
		s.runClinic(ctx, *clinic, &stats)
	}

	if s.metrics != nil {
		s.metrics.ObserveCycle(ctx, stats.Dispatched, stats.Failures)
	}
	return stats, nil
}

func (s *Service) runClinic(ctx context.Context, clinic clinicdomain.Clinic, stats *domain.CycleStats) {
	now := s.clock.Now()
	zone := timewindow.ParseZone(clinic.Timezone, s.log)
	period := domain.PeriodKey(zone, now)
	log := s.log.With(zap.String("clinic_id", clinic.ID.String()), zap.String("period", period))

	// Lazy quota rollover: reset the counter before any eligibility check in
	// a new period.
	if clinic.UsagePeriod != period {
		if err := s.clinicRepo.RolloverUsagePeriod(ctx, s.db, clinic.ID, period); err != nil {
			log.Error("usage period rollover failed", zap.Error(err))
			stats.Failures++
			return
		}
		clinic.UsagePeriod = period
		clinic.RemindersSentThisPeriod = 0
	}

	filter := s.builder.RemindersDue(clinic.Timezone, now)
	visits, err := s.visitRepo.List(ctx, s.db, clinic.ID, filter, pagination.Pagination{PageSize: 1000})
	if err != nil {
		log.Error("loading reminder candidates failed", zap.Error(err))
		stats.Failures++
		return
	}

	window := filter.Window

	// Past-due reminders outside the window age out silently; surface the
	// backlog so operators can spot them.
	if s.metrics != nil {
		if stale, err := s.visitRepo.CountStaleReminders(ctx, s.db, clinic.ID, window.Start); err == nil && stale > 0 {
			s.metrics.RecordStale(ctx, clinic.ID.String(), stale)
		}
	}
	for _, visit := range visits {
		if visit == nil {
			continue
		}
		stats.Candidates++

		decision := engine.EvaluateInWindow(clinic, *visit, now, window, period)
		if !decision.Eligible {
			stats.Denied[decision.Reason]++
			if s.metrics != nil {
				s.metrics.IncDenied(ctx, string(decision.Reason))
			}
			continue
		}

		if err := s.dispatchOne(ctx, &clinic, *visit, period); err != nil {
			log.Error("reminder dispatch failed",
				zap.String("visit_id", visit.ID.String()),
				zap.Error(err),
			)
			stats.Failures++
			if s.metrics != nil {
				s.metrics.IncFailure(ctx)
			}
			continue
		}

		clinic.RemindersSentThisPeriod++
		stats.Dispatched++
		if s.metrics != nil {
			s.metrics.IncDispatched(ctx)
		}
	}
}

// dispatchOne delivers a single reminder and then applies the paired write:
// the visit's sent flag and the clinic's usage counter move together inside
// one transaction or not at all.
func (s *Service) dispatchOne(ctx context.Context, clinic *clinicdomain.Clinic, visit visitdomain.Visit, period string) error {
	payload, err := s.buildPayload(ctx, *clinic, visit)
	if err != nil {
		return err
	}

	if err := s.dispatcher.Deliver(ctx, payload); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marked, err := s.visitRepo.MarkReminderSent(ctx, tx, clinic.ID, visit.ID)
		if err != nil {
			return err
		}
		incremented, err := s.clinicRepo.IncrementReminderUsage(ctx, tx, clinic.ID, period, clinic.ReminderMonthlyLimit)
		if err != nil {
			return err
		}
		if marked == 0 || incremented == 0 {
			return domain.ErrPartialWrite
		}
		return nil
	})
}

func (s *Service) buildPayload(ctx context.Context, clinic clinicdomain.Clinic, visit visitdomain.Visit) (dispatch.Reminder, error) {
	payload := dispatch.Reminder{
		ClinicID:   clinic.ID,
		ClinicName: clinic.Name,
		VisitID:    visit.ID,
		VisitDate:  visit.VisitDate,
		VisitType:  visit.VisitType,
	}

	pet, err := s.petRepo.FindByID(ctx, s.db, clinic.ID, visit.PetID)
	if err != nil {
		return payload, err
	}
	if pet == nil {
		return payload, petdomain.ErrNotFound
	}
	payload.PetName = pet.Name

	owner, err := s.ownerRepo.FindByID(ctx, s.db, clinic.ID, pet.OwnerID)
	if err != nil {
		return payload, err
	}
	if owner == nil {
		return payload, ownerdomain.ErrNotFound
	}
	payload.OwnerName = owner.FirstName + " " + owner.LastName
	payload.OwnerEmail = owner.Email

	return payload, nil
}
