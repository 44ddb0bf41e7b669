package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/owner/domain"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, owner *domain.Owner) error {
	return db.WithContext(ctx).Create(owner).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (*domain.Owner, error) {
	var owner domain.Owner
	err := db.WithContext(ctx).
		Model(&domain.Owner{}).
		Where("clinic_id = ? AND id = ?", clinicID, id).
		First(&owner).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, clinicID snowflake.ID, page pagination.Pagination) ([]*domain.Owner, error) {
	var owners []*domain.Owner
	stmt := db.WithContext(ctx).
		Model(&domain.Owner{}).
		Where("clinic_id = ?", clinicID)
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&owners).Error
	if err != nil {
		return nil, err
	}
	return owners, nil
}
