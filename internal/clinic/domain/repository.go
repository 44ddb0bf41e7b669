package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, clinic *Clinic) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Clinic, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]*Clinic, error)
	UpdateSettings(ctx context.Context, db *gorm.DB, clinic *Clinic) error

	// RolloverUsagePeriod resets the reminder counter when the clinic's quota
	// period key has moved on. The WHERE guard makes it a no-op for clinics
	// already on the current period.
	RolloverUsagePeriod(ctx context.Context, db *gorm.DB, id snowflake.ID, period string) error

	// IncrementReminderUsage bumps the period counter iff the clinic is still
	// on period and strictly under limit. Returns the number of rows updated
	// (0 means the quota guard rejected the increment).
	IncrementReminderUsage(ctx context.Context, db *gorm.DB, id snowflake.ID, period string, limit int) (int64, error)
}
