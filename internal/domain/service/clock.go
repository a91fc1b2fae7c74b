package service

import "time"

// Clock tells the current time. Tests substitute a fixed clock.
type Clock interface {
	Now() time.Time
}
