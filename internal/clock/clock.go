package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current instant. Services take it instead of calling
// time.Now so tests can pin wall-clock-sensitive behavior.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewSystemClock returns a Clock backed by the system wall clock in UTC.
func NewSystemClock() Clock { return systemClock{} }

// Module provides the system clock.
var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)
