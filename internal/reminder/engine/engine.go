// Package engine decides whether a reminder may be dispatched now. The
// evaluation is deterministic, side-effect free, and total: every outcome is
// a Decision, never an error.
package engine

import (
	"time"

	clinicdomain "github.com/omarwahbi/VetSync-sub002/internal/clinic/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/reminder/domain"
	"github.com/omarwahbi/VetSync-sub002/internal/timewindow"
	visitdomain "github.com/omarwahbi/VetSync-sub002/internal/visit/domain"
)

// Evaluate runs the ordered, short-circuit eligibility checks for one
// clinic/visit pair at instant now. The first failing check is the reported
// reason. The eligibility window is the clinic-local day containing now.
func Evaluate(clinic clinicdomain.Clinic, visit visitdomain.Visit, now time.Time) domain.Decision {
	zone := timewindow.ParseZone(clinic.Timezone, nil)
	window := timewindow.ResolveDay(zone, now)
	return EvaluateInWindow(clinic, visit, now, window, domain.PeriodKey(zone, now))
}

// EvaluateInWindow is Evaluate with the eligibility window and quota period
// precomputed, for callers that resolve them once per clinic per cycle.
func EvaluateInWindow(clinic clinicdomain.Clinic, visit visitdomain.Visit, now time.Time, window timewindow.TimeWindow, period string) domain.Decision {
	if !clinic.IsActive || subscriptionExpired(clinic, now) {
		return deny(domain.DeniedSubscriptionInactive)
	}

	if !clinic.CanSendReminders {
		return deny(domain.DeniedRemindersDisabledForClinic)
	}

	if !visit.IsReminderEnabled || visit.ReminderSent {
		return deny(domain.DeniedNotScheduledOrAlreadySent)
	}

	if visit.NextReminderDate == nil || !window.Contains(*visit.NextReminderDate) {
		return deny(domain.DeniedNotDueYet)
	}

	if clinic.ReminderMonthlyLimit <= 0 || usedThisPeriod(clinic, period) >= clinic.ReminderMonthlyLimit {
		return deny(domain.DeniedQuotaExceeded)
	}

	return domain.Decision{Eligible: true}
}

func subscriptionExpired(clinic clinicdomain.Clinic, now time.Time) bool {
	// An end date exactly at now still counts as active.
	return clinic.SubscriptionEndDate != nil && clinic.SubscriptionEndDate.Before(now)
}

// usedThisPeriod treats a stale period key as an un-rolled-over counter:
// conceptually it is already 0 in the current period even if the lazy
// rollover write has not landed yet.
func usedThisPeriod(clinic clinicdomain.Clinic, period string) int {
	if clinic.UsagePeriod != period {
		return 0
	}
	return clinic.RemindersSentThisPeriod
}

func deny(reason domain.DeniedReason) domain.Decision {
	return domain.Decision{Eligible: false, Reason: reason}
}
