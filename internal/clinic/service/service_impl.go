package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/clinicctx"
	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	"github.com/omarwahbi/VetSync-sub002/internal/timewindow"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("clinic.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context, req domain.GetClinicRequest) (domain.Clinic, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Clinic{}, err
	}
	return s.find(ctx, id)
}

func (s *Service) Current(ctx context.Context) (domain.Clinic, error) {
	id, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || id == 0 {
		return domain.Clinic{}, domain.ErrInvalidClinic
	}
	return s.find(ctx, id)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateClinicRequest) (domain.Clinic, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Clinic{}, err
	}

	clinic, err := s.find(ctx, id)
	if err != nil {
		return domain.Clinic{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Clinic{}, domain.ErrInvalidName
		}
		clinic.Name = name
	}
	if req.Timezone != nil {
		// Readers degrade to UTC on bad zones; the write path still rejects
		// them so a typo surfaces immediately instead of silently shifting
		// every dashboard to UTC.
		zone := timewindow.ParseZone(*req.Timezone, nil)
		if zone.Degraded() {
			return domain.Clinic{}, domain.ErrInvalidTimezone
		}
		clinic.Timezone = zone.Name()
	}
	if req.CanSendReminders != nil {
		clinic.CanSendReminders = *req.CanSendReminders
	}
	if req.SubscriptionEndDate != nil {
		end := req.SubscriptionEndDate.UTC()
		clinic.SubscriptionEndDate = &end
	}
	if req.ReminderMonthlyLimit != nil {
		if *req.ReminderMonthlyLimit < 0 {
			return domain.Clinic{}, domain.ErrInvalidLimit
		}
		clinic.ReminderMonthlyLimit = *req.ReminderMonthlyLimit
	}
	clinic.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateSettings(ctx, s.db, &clinic); err != nil {
		return domain.Clinic{}, err
	}

	return clinic, nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (domain.Clinic, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Clinic{}, err
	}
	if item == nil {
		return domain.Clinic{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
