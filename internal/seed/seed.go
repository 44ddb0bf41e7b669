// Package seed bootstraps a default clinic and admin user so a fresh
// install is immediately usable.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	authdomain "github.com/omarwahbi/VetSync-sub002/internal/auth/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/auth/password"
	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/config"
)

const (
	defaultClinicName    = "Main Clinic"
	defaultAdminEmail    = "admin@vetsync.local"
	defaultAdminPassword = "change-me-now"
	defaultAdminDisplay  = "VetSync Admin"
	defaultMonthlyLimit  = 100
)

// EnsureDefaultClinicAndAdmin seeds the first clinic and its admin user.
// Existing installs are left untouched.
func EnsureDefaultClinicAndAdmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		clinic, err := ensureClinicTx(ctx, tx, node, cfg.DefaultTimezone)
		if err != nil {
			return err
		}
		return ensureAdminTx(ctx, tx, node, clinic.ID)
	})
}

func ensureClinicTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, timezone string) (*clinicdomain.Clinic, error) {
	var existing clinicdomain.Clinic
	err := tx.WithContext(ctx).Order("created_at ASC").First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	clinic := &clinicdomain.Clinic{
		ID:                   node.Generate(),
		Name:                 defaultClinicName,
		Timezone:             timezone,
		IsActive:             true,
		CanSendReminders:     true,
		ReminderMonthlyLimit: defaultMonthlyLimit,
	}
	if err := tx.WithContext(ctx).Create(clinic).Error; err != nil {
		return nil, err
	}
	return clinic, nil
}

func ensureAdminTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node, clinicID snowflake.ID) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&authdomain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash(defaultAdminPassword)
	if err != nil {
		return err
	}

	return tx.WithContext(ctx).Create(&authdomain.User{
		ID:           node.Generate(),
		ClinicID:     clinicID,
		Email:        defaultAdminEmail,
		DisplayName:  defaultAdminDisplay,
		PasswordHash: &hashed,
		Role:         "admin",
		IsActive:     true,
	}).Error
}
