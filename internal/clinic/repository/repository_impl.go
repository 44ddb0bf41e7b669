package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, clinic *domain.Clinic) error {
	return db.WithContext(ctx).Create(clinic).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Clinic, error) {
	var clinic domain.Clinic
	err := db.WithContext(ctx).
		Model(&domain.Clinic{}).
		Where("id = ?", id).
		First(&clinic).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]*domain.Clinic, error) {
	var clinics []*domain.Clinic
	err := db.WithContext(ctx).
		Model(&domain.Clinic{}).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *repo) UpdateSettings(ctx context.Context, db *gorm.DB, clinic *domain.Clinic) error {
	return db.WithContext(ctx).
		Model(&domain.Clinic{}).
		Where("id = ?", clinic.ID).
		Updates(map[string]any{
			"name":                   clinic.Name,
			"timezone":               clinic.Timezone,
			"can_send_reminders":     clinic.CanSendReminders,
			"subscription_end_date":  clinic.SubscriptionEndDate,
			"reminder_monthly_limit": clinic.ReminderMonthlyLimit,
			"updated_at":             clinic.UpdatedAt,
		}).Error
}

func (r *repo) RolloverUsagePeriod(ctx context.Context, db *gorm.DB, id snowflake.ID, period string) error {
	return db.WithContext(ctx).
		Model(&domain.Clinic{}).
		Where("id = ? AND usage_period <> ?", id, period).
		Updates(map[string]any{
			"usage_period":               period,
			"reminders_sent_this_period": 0,
		}).Error
}

func (r *repo) IncrementReminderUsage(ctx context.Context, db *gorm.DB, id snowflake.ID, period string, limit int) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Clinic{}).
		Where("id = ? AND usage_period = ? AND reminders_sent_this_period < ?", id, period, limit).
		Update("reminders_sent_this_period", gorm.Expr("reminders_sent_this_period + 1"))
	return res.RowsAffected, res.Error
}
