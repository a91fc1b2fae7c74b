// Package clock provides the wall clock.
package clock

import (
	"time"

	"backoffice/internal/domain/service"
)

type systemClock struct{}

// New returns a clock reading the system time.
func New() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed is a clock stopped at one instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
