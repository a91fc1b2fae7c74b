package entity

import "time"

// VoucherIDWidth is the number of digits of a voucher serial.
const VoucherIDWidth = 10

// Voucher is a prepaid refill voucher identified by a 10-digit serial.
type Voucher struct {
	ID        string    `json:"id"`
	Refill    int       `json:"refill"` // Face value, positive.
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	Status    string    `json:"status"`
	DateAdded Date      `json:"date_added"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot returns the editable fields keyed by column name.
func (v *Voucher) Snapshot() map[string]any {
	return map[string]any{
		"refill":     v.Refill,
		"start_date": v.StartDate,
		"end_date":   v.EndDate,
		"status":     v.Status,
	}
}

// VoucherFilter narrows a voucher listing. Page is 1-based.
type VoucherFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// VoucherSummary counts vouchers per status.
type VoucherSummary struct {
	Circulation int `json:"circulation"`
	Used        int `json:"used"`
	Expired     int `json:"expired"`
	Scheduled   int `json:"scheduled"`
}

// SaveVouchersOutcome reports a bulk voucher save.
type SaveVouchersOutcome struct {
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped"`
	IDs     []string `json:"ids"`
}
