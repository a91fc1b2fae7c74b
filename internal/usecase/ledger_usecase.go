package usecase

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// LedgerInput records a movement of loyalty points
type LedgerInput struct {
	CustomerID      string           `json:"customer_id" validate:"required"`
	CustomerName    string           `json:"customer_name"`
	Type            string           `json:"type" validate:"required,oneof=Earned Redeemed"`
	Points          int              `json:"points" validate:"gt=0"`
	EquivalentValue *decimal.Decimal `json:"equivalent_value"` // Derived from the latest rate when nil
	OrderNumber     string           `json:"order_number"`
	Notes           string           `json:"notes"`
}

// LedgerQuery filters the ledger by calendar days in the business timezone.
// Both bounds are inclusive.
type LedgerQuery struct {
	CustomerID string `query:"customer_id"`
	Type       string `query:"type"`
	From       string `query:"from"`
	To         string `query:"to"`
}

// LedgerUsecase defines the rewards ledger use cases
type LedgerUsecase interface {
	Add(ctx context.Context, input *LedgerInput) (*entity.Result, error)
	List(ctx context.Context, query LedgerQuery) ([]*entity.LedgerEntry, error)
	Get(ctx context.Context, id string) (*entity.LedgerEntry, error)
	UpdateNotes(ctx context.Context, id, notes string) (*entity.Result, error)
	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	Export(ctx context.Context, format string, query LedgerQuery) (*Export, error)
}
