package domain

import "github.com/omarwahbi/VetSync-sub002/internal/timewindow"

// DateField names the timestamp column a Filter's window applies to.
type DateField string

const (
	// FilterByVisitDate windows on the appointment itself (dashboards).
	FilterByVisitDate DateField = "visit_date"
	// FilterByReminderDate windows on the scheduled reminder instant
	// (dispatch candidate loading).
	FilterByReminderDate DateField = "next_reminder_date"
)

// Filter is a pure data description of a visit query. It performs no I/O;
// the repository translates it into SQL. Nil optional fields mean "no
// constraint".
type Filter struct {
	Window          timewindow.TimeWindow
	DateField       DateField
	VisitType       *string
	ReminderEnabled *bool
	ReminderSent    *bool
}
