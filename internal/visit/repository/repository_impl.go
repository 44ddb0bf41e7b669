package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
	"github.com/omarwahbi/VetSync-sub002/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, visit *domain.Visit) error {
	return db.WithContext(ctx).Create(visit).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (*domain.Visit, error) {
	var visit domain.Visit
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Where("clinic_id = ? AND id = ?", clinicID, id).
		First(&visit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &visit, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, clinicID snowflake.ID, filter domain.Filter, page pagination.Pagination) ([]*domain.Visit, error) {
	var visits []*domain.Visit
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.Visit{}).Where("clinic_id = ?", clinicID), filter)
	stmt = page.Apply(stmt)
	err := stmt.
		Order("visit_date asc, id asc").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *repo) MarkReminderSent(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Where("clinic_id = ? AND id = ? AND reminder_sent = ?", clinicID, id, false).
		Update("reminder_sent", true)
	return res.RowsAffected, res.Error
}

func (r *repo) CountStaleReminders(ctx context.Context, db *gorm.DB, clinicID snowflake.ID, before time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Visit{}).
		Where("clinic_id = ? AND is_reminder_enabled = ? AND reminder_sent = ? AND next_reminder_date < ?",
			clinicID, true, false, before).
		Count(&count).Error
	return count, err
}

// applyFilter translates the declarative filter into SQL predicates.
func applyFilter(stmt *gorm.DB, filter domain.Filter) *gorm.DB {
	if !filter.Window.IsZero() {
		field := filter.DateField
		if field == "" {
			field = domain.FilterByVisitDate
		}
		stmt = stmt.Where(string(field)+" >= ? AND "+string(field)+" <= ?", filter.Window.Start, filter.Window.End)
	}
	if filter.VisitType != nil {
		stmt = stmt.Where("visit_type = ?", *filter.VisitType)
	}
	if filter.ReminderEnabled != nil {
		stmt = stmt.Where("is_reminder_enabled = ?", *filter.ReminderEnabled)
	}
	if filter.ReminderSent != nil {
		stmt = stmt.Where("reminder_sent = ?", *filter.ReminderSent)
	}
	return stmt
}
