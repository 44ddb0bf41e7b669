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
	Insert(ctx context.Context, db *gorm.DB, visit *Visit) error
	FindByID(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (*Visit, error)
	List(ctx context.Context, db *gorm.DB, clinicID snowflake.ID, filter Filter, page pagination.Pagination) ([]*Visit, error)

	// MarkReminderSent flips reminder_sent false->true. The WHERE guard keeps
	// the flag monotonic; 0 rows means another writer got there first.
	MarkReminderSent(ctx context.Context, db *gorm.DB, clinicID, id snowflake.ID) (int64, error)

	// CountStaleReminders counts scheduled, unsent reminders whose due date
	// is already behind the given instant. They age out silently; the count
	// feeds an operator metric.
	CountStaleReminders(ctx context.Context, db *gorm.DB, clinicID snowflake.ID, before time.Time) (int64, error)
}

type CreateVisitRequest struct {
	PetID             string
	VisitDate         time.Time
	VisitType         string
	Notes             string
	NextReminderDate  *time.Time
	IsReminderEnabled bool
}

type GetVisitRequest struct {
	ID string
}

type DueTodayRequest struct {
	PageToken string
	PageSize  int
}

type UpcomingRequest struct {
	DaysAhead       int
	VisitType       *string
	ReminderEnabled *bool
	PageToken       string
	PageSize        int
}

type ListVisitRequest struct {
	VisitType       *string
	ReminderEnabled *bool
	PageToken       string
	PageSize        int
}

type ListVisitResponse struct {
	pagination.PageInfo
	Visits []Visit          `json:"visits"`
	Window *ListVisitWindow `json:"window,omitempty"`
}

type ListVisitWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Service interface {
	Create(ctx context.Context, req CreateVisitRequest) (Visit, error)
	GetByID(ctx context.Context, req GetVisitRequest) (Visit, error)

	// List pages through the clinic's visits without a date window,
	// with optional type/reminder narrowing.
	List(ctx context.Context, req ListVisitRequest) (ListVisitResponse, error)

	// DueToday lists every visit scheduled within the clinic-local calendar
	// day, reminder-related or not.
	DueToday(ctx context.Context, req DueTodayRequest) (ListVisitResponse, error)

	// Upcoming lists visits over a clinic-local horizon with optional
	// type/reminder narrowing.
	Upcoming(ctx context.Context, req UpcomingRequest) (ListVisitResponse, error)
}

var (
	ErrInvalidClinic    = errors.New("invalid_clinic")
	ErrInvalidPet       = errors.New("invalid_pet")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidVisitDate = errors.New("invalid_visit_date")
	ErrInvalidDaysAhead = errors.New("invalid_days_ahead")
	ErrNotFound         = errors.New("not_found")
)
