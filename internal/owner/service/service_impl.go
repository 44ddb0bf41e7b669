package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/clinicctx"
	"github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("owner.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOwnerRequest) (domain.Owner, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Owner{}, domain.ErrInvalidClinic
	}

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	if first == "" || last == "" {
		return domain.Owner{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	owner := domain.Owner{
		ID:        s.genID.Generate(),
		ClinicID:  clinicID,
		FirstName: first,
		LastName:  last,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &owner); err != nil {
		return domain.Owner{}, err
	}

	return owner, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetOwnerRequest) (domain.Owner, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Owner{}, domain.ErrInvalidClinic
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Owner{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clinicID, id)
	if err != nil {
		return domain.Owner{}, err
	}
	if item == nil {
		return domain.Owner{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOwnerRequest) (domain.ListOwnerResponse, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.ListOwnerResponse{}, domain.ErrInvalidClinic
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, clinicID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOwnerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(owner *domain.Owner) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        owner.ID.String(),
			CreatedAt: owner.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	owners := make([]domain.Owner, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		owners = append(owners, *item)
	}

	resp := domain.ListOwnerResponse{Owners: owners}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
