package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, owner *Owner) error
	FindByID(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (*Owner, error)
	List(ctx context.Context, db *gorm.DB, clinicID snowflake.ID, page pagination.Pagination) ([]*Owner, error)
}

type CreateOwnerRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type GetOwnerRequest struct {
	ID string
}

type ListOwnerRequest struct {
	PageToken string
	PageSize  int
}

type ListOwnerResponse struct {
	pagination.PageInfo
	Owners []Owner `json:"owners"`
}

type Service interface {
	Create(ctx context.Context, req CreateOwnerRequest) (Owner, error)
	GetByID(ctx context.Context, req GetOwnerRequest) (Owner, error)
	List(ctx context.Context, req ListOwnerRequest) (ListOwnerResponse, error)
}

var (
	ErrInvalidClinic = errors.New("invalid_clinic")
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")
)
