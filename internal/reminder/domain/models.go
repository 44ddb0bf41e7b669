package domain

import (
	"time"

	"github.com/omarwahbi/VetSync-sub002/internal/timewindow"
)

// DeniedReason explains why a reminder may not be dispatched now. These are
// structured results, never errors: the caller decides whether to message the
// user or skip silently.
type DeniedReason string

const (
	DeniedSubscriptionInactive       DeniedReason = "subscription_inactive"
	DeniedRemindersDisabledForClinic DeniedReason = "reminders_disabled_for_clinic"
	DeniedNotScheduledOrAlreadySent  DeniedReason = "not_scheduled_or_already_sent"
	DeniedNotDueYet                  DeniedReason = "not_due_yet"
	DeniedQuotaExceeded              DeniedReason = "quota_exceeded"
)

// Decision is the outcome of an eligibility evaluation. Reason is set only
// when Eligible is false.
type Decision struct {
	Eligible bool         `json:"eligible"`
	Reason   DeniedReason `json:"reason,omitempty"`
}

// Evaluation is a Decision together with the clinic-local eligibility window
// and quota period it was made against, returned by preview endpoints.
type Evaluation struct {
	Decision
	Window timewindow.TimeWindow `json:"window"`
	Period string                `json:"period"`
}

// PeriodKey identifies the quota period containing now, computed in the
// clinic's local timezone: the quota paces clinic-facing traffic, so its
// month boundary follows the clinic's wall clock like every other boundary
// in the product.
func PeriodKey(zone timewindow.Zone, now time.Time) string {
	return zone.In(now).Format("2006-01")
}
