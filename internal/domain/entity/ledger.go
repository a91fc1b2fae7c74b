package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger transaction types.
const (
	LedgerEarned   = "Earned"
	LedgerRedeemed = "Redeemed"
)

// LedgerEntry is one movement of loyalty points.
type LedgerEntry struct {
	ID              string           `json:"id"` // Generated RL-YYYYMMDD-NNNN identifier.
	Date            time.Time        `json:"date"`
	CustomerID      string           `json:"customer_id"`
	CustomerName    string           `json:"customer_name"`
	Type            string           `json:"type"` // Earned or Redeemed.
	Points          int              `json:"points"`
	EquivalentValue *decimal.Decimal `json:"equivalent_value"`
	ConversionRate  *decimal.Decimal `json:"conversion_rate"`
	OrderNumber     string           `json:"order_number"`
	Notes           string           `json:"notes"`
}

// Snapshot returns the editable fields keyed by column name.
func (e *LedgerEntry) Snapshot() map[string]any {
	return map[string]any{"notes": e.Notes}
}

// LedgerFilter narrows a ledger listing. From is inclusive and Until is
// exclusive; zero values leave the range open.
type LedgerFilter struct {
	CustomerID string
	Type       string
	From       time.Time
	Until      time.Time
}

// EarnedTotals sums a customer's earning history.
type EarnedTotals struct {
	Points int64
	Value  decimal.Decimal
}
