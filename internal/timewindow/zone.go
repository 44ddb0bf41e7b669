package timewindow

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// Zone is a validated IANA timezone. Construction never fails: an empty or
// unrecognized name degrades to UTC so window resolution stays total.
type Zone struct {
	name     string
	loc      *time.Location
	degraded bool
}

// ParseZone validates name against the IANA database. On any failure it logs
// a warning identifying the bad zone and returns the UTC zone.
func ParseZone(name string, log *zap.Logger) Zone {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Zone{name: "UTC", loc: time.UTC, degraded: name != ""}
	}

	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		if log != nil {
			log.Warn("unrecognized timezone, falling back to UTC",
				zap.String("timezone", trimmed),
				zap.Error(err),
			)
		}
		return Zone{name: "UTC", loc: time.UTC, degraded: true}
	}

	return Zone{name: trimmed, loc: loc}
}

// UTC returns the degraded-default zone.
func UTC() Zone {
	return Zone{name: "UTC", loc: time.UTC}
}

// Name reports the resolved zone name ("UTC" when degraded).
func (z Zone) Name() string {
	if z.loc == nil {
		return "UTC"
	}
	return z.name
}

// Degraded reports whether the original zone string failed validation.
func (z Zone) Degraded() bool { return z.degraded }

// In projects t into the zone's local wall clock.
func (z Zone) In(t time.Time) time.Time {
	return t.In(z.location())
}

func (z Zone) location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}
