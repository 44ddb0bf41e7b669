// Package query builds declarative visit filters over clinic-local time
// windows. Builders are pure apart from the fallback warning logged when a
// clinic carries an unusable timezone.
package query

import (
	"time"

	"github.com/omarwahbi/VetSync-sub002/internal/timewindow"
	"github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
	"go.uber.org/zap"
)

type Builder struct {
	log *zap.Logger
}

func NewBuilder(log *zap.Logger) *Builder {
	return &Builder{log: log.Named("visit.query")}
}

// DueToday describes every visit scheduled within the clinic-local calendar
// day containing now. No implicit reminder or type constraint: "due today"
// means any scheduled visit.
func (b *Builder) DueToday(clinicTimezone string, now time.Time) domain.Filter {
	zone := timewindow.ParseZone(clinicTimezone, b.log)
	return domain.Filter{
		Window:    timewindow.ResolveDay(zone, now),
		DateField: domain.FilterByVisitDate,
	}
}

// Upcoming describes visits from today's clinic-local start through the end
// of the day daysAhead days out. visitType and reminderEnabled narrow the
// result only when non-nil. daysAhead of zero shares its end boundary with
// DueToday and is not special-cased.
func (b *Builder) Upcoming(clinicTimezone string, now time.Time, daysAhead int, visitType *string, reminderEnabled *bool) domain.Filter {
	zone := timewindow.ParseZone(clinicTimezone, b.log)
	return domain.Filter{
		Window:          timewindow.ResolveHorizon(zone, now, daysAhead),
		DateField:       domain.FilterByVisitDate,
		VisitType:       visitType,
		ReminderEnabled: reminderEnabled,
	}
}

// RemindersDue describes the dispatch candidates for the clinic-local day:
// reminder-enabled, not yet sent, with next_reminder_date inside today's
// window.
func (b *Builder) RemindersDue(clinicTimezone string, now time.Time) domain.Filter {
	zone := timewindow.ParseZone(clinicTimezone, b.log)
	enabled := true
	sent := false
	return domain.Filter{
		Window:          timewindow.ResolveDay(zone, now),
		DateField:       domain.FilterByReminderDate,
		ReminderEnabled: &enabled,
		ReminderSent:    &sent,
	}
}
