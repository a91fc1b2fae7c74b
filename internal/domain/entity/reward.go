package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardRule describes how customers earn loyalty points.
type RewardRule struct {
	ID            string           `json:"id"` // Caller supplied or generated RW-YYYYMMDD-NNNN.
	Rule          string           `json:"rule"`
	StartDate     Date             `json:"start_date"`
	EndDate       Date             `json:"end_date"`
	Note          string           `json:"note"`
	Status        string           `json:"status"`
	MinSpend      *decimal.Decimal `json:"min_spend"`
	ReferenceCode string           `json:"reference_code"`
	CustomerID    string           `json:"customer_id"`
	Points        int              `json:"points"`
}

// Snapshot returns the editable fields keyed by column name.
func (r *RewardRule) Snapshot() map[string]any {
	return map[string]any{
		"start_date": r.StartDate,
		"end_date":   r.EndDate,
		"status":     r.Status,
		"note":       r.Note,
	}
}

// ConversionRate says how many pesos a number of points is worth. The most
// recent rate is the one in force.
type ConversionRate struct {
	ID        uint64          `json:"id"`
	Points    int             `json:"points"`
	Peso      decimal.Decimal `json:"peso"`
	Date      Date            `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

// PesoPerPoint returns the value of a single point.
func (c *ConversionRate) PesoPerPoint() decimal.Decimal {
	if c.Points == 0 {
		return decimal.Zero
	}

	return c.Peso.Div(decimal.NewFromInt(int64(c.Points)))
}
