package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/clinicctx"
	"github.com/omarwahbi/VetSync-sub002/internal/clock"
	petdomain "github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
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
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	PetRepo    petdomain.Repository
	ClinicRepo clinicdomain.Repository
	Builder    *query.Builder
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	petRepo    petdomain.Repository
	clinicRepo clinicdomain.Repository
	builder    *query.Builder
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("visit.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		petRepo:    p.PetRepo,
		clinicRepo: p.ClinicRepo,
		builder:    p.Builder,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVisitRequest) (domain.Visit, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Visit{}, domain.ErrInvalidClinic
	}

	petID, err := snowflake.ParseString(strings.TrimSpace(req.PetID))
	if err != nil || petID == 0 {
		return domain.Visit{}, domain.ErrInvalidPet
	}

	pet, err := s.petRepo.FindByID(ctx, s.db, clinicID, petID)
	if err != nil {
		return domain.Visit{}, err
	}
	if pet == nil {
		return domain.Visit{}, domain.ErrInvalidPet
	}

	if req.VisitDate.IsZero() {
		return domain.Visit{}, domain.ErrInvalidVisitDate
	}

	var nextReminder *time.Time
	if req.NextReminderDate != nil {
		at := req.NextReminderDate.UTC()
		nextReminder = &at
	}

	now := s.clock.Now()
	visit := domain.Visit{
		ID:                s.genID.Generate(),
		ClinicID:          clinicID,
		PetID:             petID,
		VisitDate:         req.VisitDate.UTC(),
		VisitType:         strings.TrimSpace(req.VisitType),
		Notes:             strings.TrimSpace(req.Notes),
		NextReminderDate:  nextReminder,
		IsReminderEnabled: req.IsReminderEnabled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &visit); err != nil {
		return domain.Visit{}, err
	}

	return visit, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetVisitRequest) (domain.Visit, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Visit{}, domain.ErrInvalidClinic
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Visit{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clinicID, id)
	if err != nil {
		return domain.Visit{}, err
	}
	if item == nil {
		return domain.Visit{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListVisitRequest) (domain.ListVisitResponse, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.ListVisitResponse{}, domain.ErrInvalidClinic
	}

	filter := domain.Filter{
		VisitType:       req.VisitType,
		ReminderEnabled: req.ReminderEnabled,
	}
	return s.list(ctx, clinicID, filter, req.PageToken, req.PageSize)
}

func (s *Service) DueToday(ctx context.Context, req domain.DueTodayRequest) (domain.ListVisitResponse, error) {
	clinic, err := s.currentClinic(ctx)
	if err != nil {
		return domain.ListVisitResponse{}, err
	}

	filter := s.builder.DueToday(clinic.Timezone, s.clock.Now())
	return s.list(ctx, clinic.ID, filter, req.PageToken, req.PageSize)
}

func (s *Service) Upcoming(ctx context.Context, req domain.UpcomingRequest) (domain.ListVisitResponse, error) {
	clinic, err := s.currentClinic(ctx)
	if err != nil {
		return domain.ListVisitResponse{}, err
	}

	if req.DaysAhead < 0 {
		return domain.ListVisitResponse{}, domain.ErrInvalidDaysAhead
	}

	filter := s.builder.Upcoming(clinic.Timezone, s.clock.Now(), req.DaysAhead, req.VisitType, req.ReminderEnabled)
	return s.list(ctx, clinic.ID, filter, req.PageToken, req.PageSize)
}

func (s *Service) currentClinic(ctx context.Context) (clinicdomain.Clinic, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return clinicdomain.Clinic{}, domain.ErrInvalidClinic
	}
	clinic, err := s.clinicRepo.FindByID(ctx, s.db, clinicID)
	if err != nil {
		return clinicdomain.Clinic{}, err
	}
	if clinic == nil {
		return clinicdomain.Clinic{}, domain.ErrInvalidClinic
	}
	return *clinic, nil
}

func (s *Service) list(ctx context.Context, clinicID snowflake.ID, filter domain.Filter, pageToken string, pageSize int) (domain.ListVisitResponse, error) {
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, clinicID, filter, pagination.Pagination{
		PageToken: pageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListVisitResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(visit *domain.Visit) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        visit.ID.String(),
			CreatedAt: visit.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	visits := make([]domain.Visit, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		visits = append(visits, *item)
	}

	resp := domain.ListVisitResponse{Visits: visits}
	if !filter.Window.IsZero() {
		resp.Window = &domain.ListVisitWindow{
			Start: filter.Window.Start,
			End:   filter.Window.End,
		}
	}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
