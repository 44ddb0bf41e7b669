// Package dispatch delivers reminders to clinic clients. Delivery transport
// is a collaborator: the reminder service only cares that Deliver either
// succeeds or returns an error.
package dispatch

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Reminder is the delivery payload for one eligible visit.
type Reminder struct {
	ClinicID   snowflake.ID
	ClinicName string
	VisitID    snowflake.ID
	PetName    string
	OwnerName  string
	OwnerEmail string
	VisitDate  time.Time
	VisitType  string
}

type Provider interface {
	Deliver(ctx context.Context, reminder Reminder) error
}
