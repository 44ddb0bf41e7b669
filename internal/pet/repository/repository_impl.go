package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/pet/domain"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, pet *domain.Pet) error {
	return db.WithContext(ctx).Create(pet).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (*domain.Pet, error) {
	var pet domain.Pet
	err := db.WithContext(ctx).
		Model(&domain.Pet{}).
		Where("clinic_id = ? AND id = ?", clinicID, id).
		First(&pet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (r *repo) ListByOwner(ctx context.Context, db *gorm.DB, clinicID, ownerID snowflake.ID, page pagination.Pagination) ([]*domain.Pet, error) {
	var pets []*domain.Pet
	stmt := db.WithContext(ctx).
		Model(&domain.Pet{}).
		Where("clinic_id = ? AND owner_id = ?", clinicID, ownerID)
	stmt = page.Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}
