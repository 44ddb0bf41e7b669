package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, pet *Pet) error
	FindByID(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (*Pet, error)
	ListByOwner(ctx context.Context, db *gorm.DB, clinicID, ownerID snowflake.ID, page pagination.Pagination) ([]*Pet, error)
}

type CreatePetRequest struct {
	OwnerID   string
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
}

type GetPetRequest struct {
	ID string
}

type ListPetRequest struct {
	OwnerID   string
	PageToken string
	PageSize  int
}

type ListPetResponse struct {
	pagination.PageInfo
	Pets []Pet `json:"pets"`
}

type Service interface {
	Create(ctx context.Context, req CreatePetRequest) (Pet, error)
	GetByID(ctx context.Context, req GetPetRequest) (Pet, error)
	ListByOwner(ctx context.Context, req ListPetRequest) (ListPetResponse, error)
}

var (
	ErrInvalidClinic = errors.New("invalid_clinic")
	ErrInvalidOwner  = errors.New("invalid_owner")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
