package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/clinicctx"
	ownerdomain "github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	OwnerRepo ownerdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	ownerRepo ownerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("pet.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		ownerRepo: p.OwnerRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePetRequest) (domain.Pet, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Pet{}, domain.ErrInvalidClinic
	}

	ownerID, err := snowflake.ParseString(strings.TrimSpace(req.OwnerID))
	if err != nil || ownerID == 0 {
		return domain.Pet{}, domain.ErrInvalidOwner
	}

	owner, err := s.ownerRepo.FindByID(ctx, s.db, clinicID, ownerID)
	if err != nil {
		return domain.Pet{}, err
	}
	if owner == nil {
		return domain.Pet{}, domain.ErrInvalidOwner
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Pet{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	pet := domain.Pet{
		ID:        s.genID.Generate(),
		ClinicID:  clinicID,
		OwnerID:   ownerID,
		Name:      name,
		Species:   strings.TrimSpace(req.Species),
		Breed:     strings.TrimSpace(req.Breed),
		BirthDate: req.BirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &pet); err != nil {
		return domain.Pet{}, err
	}

	return pet, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetPetRequest) (domain.Pet, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.Pet{}, domain.ErrInvalidClinic
	}

	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.Pet{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, clinicID, id)
	if err != nil {
		return domain.Pet{}, err
	}
	if item == nil {
		return domain.Pet{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListByOwner(ctx context.Context, req domain.ListPetRequest) (domain.ListPetResponse, error) {
	clinicID, ok := clinicctx.ClinicIDFromContext(ctx)
	if !ok || clinicID == 0 {
		return domain.ListPetResponse{}, domain.ErrInvalidClinic
	}

	ownerID, err := snowflake.ParseString(strings.TrimSpace(req.OwnerID))
	if err != nil || ownerID == 0 {
		return domain.ListPetResponse{}, domain.ErrInvalidOwner
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.ListByOwner(ctx, s.db, clinicID, ownerID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListPetResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(pet *domain.Pet) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        pet.ID.String(),
			CreatedAt: pet.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	pets := make([]domain.Pet, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		pets = append(pets, *item)
	}

	resp := domain.ListPetResponse{Pets: pets}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
