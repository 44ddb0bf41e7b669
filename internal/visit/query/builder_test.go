package query

import (
	"testing"
	"time"

	"github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDueToday_NoImplicitConstraints(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	f := b.DueToday("Europe/Berlin", now)

	assert.Equal(t, domain.FilterByVisitDate, f.DateField)
	assert.Nil(t, f.VisitType)
	assert.Nil(t, f.ReminderEnabled)
	assert.Nil(t, f.ReminderSent)
	assert.True(t, f.Window.Start.Before(f.Window.End))
}

func TestUpcoming_ZeroDaysSharesDueTodayEnd(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	now := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)

	due := b.DueToday("America/New_York", now)
	upcoming := b.Upcoming("America/New_York", now, 0, nil, nil)

	assert.Equal(t, due.Window.End, upcoming.Window.End)
	assert.Equal(t, due.Window.Start, upcoming.Window.Start)
}

func TestUpcoming_OptionalNarrowing(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	visitType := "vaccination"
	enabled := true

	f := b.Upcoming("Asia/Tokyo", now, 14, &visitType, &enabled)

	assert.Equal(t, "vaccination", *f.VisitType)
	assert.True(t, *f.ReminderEnabled)
	assert.Nil(t, f.ReminderSent)
}

func TestUpcoming_OmittedReminderFlagUnconstrained(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	f := b.Upcoming("Asia/Tokyo", now, 7, nil, nil)

	assert.Nil(t, f.ReminderEnabled)
	assert.Nil(t, f.VisitType)
}

func TestRemindersDue_ConstrainsPendingReminders(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	f := b.RemindersDue("America/New_York", now)

	assert.Equal(t, domain.FilterByReminderDate, f.DateField)
	assert.True(t, *f.ReminderEnabled)
	assert.False(t, *f.ReminderSent)
}

func TestBuilder_InvalidZoneStillYieldsWindow(t *testing.T) {
	b := NewBuilder(zap.NewNop())
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)

	f := b.DueToday("Atlantis/Sunken", now)

	// UTC calendar-day fallback.
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), f.Window.Start)
	assert.Equal(t, time.Date(2024, 6, 10, 23, 59, 59, int(999*time.Millisecond), time.UTC), f.Window.End)
}
