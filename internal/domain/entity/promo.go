package entity

import "time"

// Promo is a promotional code with a validity window.
type Promo struct {
	Code           string `json:"code"` // Caller supplied, unique.
	Type           string `json:"type"`
	RuleSummary    string `json:"rule_summary"`
	StartDate      Date   `json:"start_date"`
	EndDate        Date   `json:"end_date"`
	Status         string `json:"status"`
	MaxRedemptions *int   `json:"max_redemptions"` // Nil means unlimited.
	Redemptions    int    `json:"redemptions"`
	Note           string `json:"note"`
}

// Snapshot returns the editable fields keyed by column name.
func (p *Promo) Snapshot() map[string]any {
	var maxRedemptions any
	if p.MaxRedemptions != nil {
		maxRedemptions = *p.MaxRedemptions
	}

	return map[string]any{
		"start_date":      p.StartDate,
		"end_date":        p.EndDate,
		"max_redemptions": maxRedemptions,
		"note":            p.Note,
		"status":          p.Status,
	}
}

// PromoFilter narrows a promo listing.
type PromoFilter struct {
	Search string
	Status string
}

// PromoRedemption records a customer using a promo on an order.
type PromoRedemption struct {
	ID         uint64    `json:"id"`
	Code       string    `json:"code"`
	CustomerID string    `json:"customer_id"`
	OrderID    string    `json:"order_id"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

// PromoStats counts promos per status.
type PromoStats struct {
	Active  int `json:"active"`
	Used    int `json:"used"`
	Expired int `json:"expired"`
}
