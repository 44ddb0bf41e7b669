package domain

import (
	"context"
	"errors"
)

// CycleStats summarizes one dispatch cycle.
type CycleStats struct {
	Clinics    int                  `json:"clinics"`
	Candidates int                  `json:"candidates"`
	Dispatched int                  `json:"dispatched"`
	Denied     map[DeniedReason]int `json:"denied,omitempty"`
	Failures   int                  `json:"failures"`
}

type Service interface {
	// Preview evaluates eligibility for one visit without dispatching.
	Preview(ctx context.Context, visitID string) (Evaluation, error)

	// RunCycle walks every active clinic, dispatches eligible reminders, and
	// applies the atomic sent-flag + usage-counter write per success.
	RunCycle(ctx context.Context) (CycleStats, error)
}

var (
	ErrInvalidClinic = errors.New("invalid_clinic")
	ErrInvalidID     = errors.New("invalid_id")
	ErrNotFound      = errors.New("not_found")

	// ErrPartialWrite reports that the sent flag and the counter increment
	// could not be applied together; the transaction rolls back.
	ErrPartialWrite = errors.New("reminder_partial_write")
)
