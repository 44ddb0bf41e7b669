package domain

import (
	"context"
	"errors"
	"time"
)

type GetClinicRequest struct {
	ID string
}

type UpdateClinicRequest struct {
	ID                   string
	Name                 *string
	Timezone             *string
	CanSendReminders     *bool
	SubscriptionEndDate  *time.Time
	ReminderMonthlyLimit *int
}

type Service interface {
	Get(ctx context.Context, req GetClinicRequest) (Clinic, error)
	Current(ctx context.Context) (Clinic, error)
	Update(ctx context.Context, req UpdateClinicRequest) (Clinic, error)
}

var (
	ErrInvalidClinic   = errors.New("invalid_clinic")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidTimezone = errors.New("invalid_timezone")
	ErrInvalidLimit    = errors.New("invalid_limit")
	ErrNotFound        = errors.New("not_found")
)
