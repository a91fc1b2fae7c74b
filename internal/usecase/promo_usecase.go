package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// PromoInput carries a whole promo for Save
type PromoInput struct {
	Code           string `json:"code" validate:"required"`
	Type           string `json:"type" validate:"required"`
	RuleSummary    string `json:"rule_summary" validate:"required"`
	StartDate      string `json:"start_date" validate:"required"`
	EndDate        string `json:"end_date"`
	Status         string `json:"status"`
	MaxRedemptions *int   `json:"max_redemptions" validate:"omitempty,gte=0"`
	Note           string `json:"note"`
}

// PromoUpdate carries the fields editable after a promo is saved
type PromoUpdate struct {
	StartDate      string `json:"start_date" validate:"required"`
	EndDate        string `json:"end_date"`
	MaxRedemptions *int   `json:"max_redemptions" validate:"omitempty,gte=0"`
	Note           string `json:"note"`
	Status         string `json:"status"`
}

// RedemptionInput records a promo used on an order
type RedemptionInput struct {
	CustomerID string `json:"customer_id" validate:"required"`
	OrderID    string `json:"order_id"`
}

// PromoUsecase defines the promo code use cases
type PromoUsecase interface {
	// Save inserts a promo or replaces the one with the same code
	Save(ctx context.Context, input *PromoInput) (*entity.Result, error)

	// List returns promos with their status derived as of today
	List(ctx context.Context, filter entity.PromoFilter) ([]*entity.Promo, error)

	Get(ctx context.Context, code string) (*entity.Promo, error)
	Update(ctx context.Context, code string, input *PromoUpdate) (*entity.Result, error)
	Stats(ctx context.Context) (*entity.PromoStats, error)

	// RecordRedemption counts a customer's first use of a promo. Repeat uses
	// by the same customer are accepted without counting again.
	RecordRedemption(ctx context.Context, code string, input *RedemptionInput) (*entity.Result, error)

	Logs(ctx context.Context, code string) ([]*entity.ChangeLogEntry, error)
	Import(ctx context.Context, rows Rows) (*entity.ImportSummary, error)
	Export(ctx context.Context, format string) (*Export, error)
}
