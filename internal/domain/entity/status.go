package entity

import "slices"

// Lifecycle names the statuses of a dated entity whose status follows its
// start and end dates.
type Lifecycle struct {
	Scheduled string
	Active    string
	Expired   string
	// Terminal statuses are set by hand and survive recomputation while the
	// entity is inside its date window.
	Terminal []string
}

// Promo statuses.
const (
	PromoStatusScheduled = "Scheduled"
	PromoStatusActive    = "Active"
	PromoStatusExpired   = "Expired"
	PromoStatusUsed      = "Used"
)

// Voucher statuses.
const (
	VoucherStatusScheduled   = "Scheduled"
	VoucherStatusCirculation = "Circulation"
	VoucherStatusExpired     = "Expired"
	VoucherStatusUsed        = "Used"
)

var (
	PromoLifecycle = Lifecycle{
		Scheduled: PromoStatusScheduled,
		Active:    PromoStatusActive,
		Expired:   PromoStatusExpired,
		Terminal:  []string{PromoStatusUsed},
	}

	VoucherLifecycle = Lifecycle{
		Scheduled: VoucherStatusScheduled,
		Active:    VoucherStatusCirculation,
		Expired:   VoucherStatusExpired,
		Terminal:  []string{VoucherStatusUsed},
	}
)

// Derive computes the status for the given dates as of today:
// an end date before today expires, a start date after today schedules,
// anything else is active unless the current status is terminal.
func (l Lifecycle) Derive(start, end, today Date, current string) string {
	if !end.IsZero() && end.Before(today) {
		return l.Expired
	}
	if start.After(today) {
		return l.Scheduled
	}
	if l.IsTerminal(current) {
		return current
	}

	return l.Active
}

// IsTerminal reports whether status is a manually set terminal status.
func (l Lifecycle) IsTerminal(status string) bool {
	return slices.Contains(l.Terminal, status)
}

// Statuses lists every status of the lifecycle.
func (l Lifecycle) Statuses() []string {
	return append([]string{l.Scheduled, l.Active, l.Expired}, l.Terminal...)
}

// Valid reports whether status belongs to the lifecycle.
func (l Lifecycle) Valid(status string) bool {
	return slices.Contains(l.Statuses(), status)
}
