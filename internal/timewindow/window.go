// Package timewindow maps clinic timezones to UTC instant intervals covering
// the clinic-local calendar day or a multi-day horizon. All arithmetic is done
// on local wall-clock values so the resulting interval absorbs DST
// transitions: a spring-forward day spans 23h of UTC, a fall-back day 25h.
package timewindow

import "time"

// endOfDayNanos is local 23:59:59.999.
const endOfDayNanos = int(999 * time.Millisecond)

// TimeWindow is an immutable UTC instant interval with Start <= End.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window (inclusive bounds).
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Duration returns the UTC width of the window.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// IsZero reports whether the window was never resolved. Filters treat a zero
// window as "no date constraint".
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// ResolveDay returns the clinic-local calendar day containing now, expressed
// as UTC instants. The offsets used are the ones valid at local midnight and
// local end-of-day respectively, not a fixed offset.
func ResolveDay(zone Zone, now time.Time) TimeWindow {
	return ResolveHorizon(zone, now, 0)
}

// ResolveHorizon returns a window from today's clinic-local start through the
// local end-of-day daysAhead local days out. daysAhead below zero is treated
// as zero, so Start <= End always holds.
func ResolveHorizon(zone Zone, now time.Time, daysAhead int) TimeWindow {
	if daysAhead < 0 {
		daysAhead = 0
	}

	loc := zone.location()
	local := now.In(loc)
	year, month, day := local.Date()

	// time.Date normalizes the day overflow and resolves the UTC offset at
	// the resulting local moment, which is what makes this DST-correct.
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	end := time.Date(year, month, day+daysAhead, 23, 59, 59, endOfDayNanos, loc)

	return TimeWindow{Start: start.UTC(), End: end.UTC()}
}
