package usecase

import (
	"context"

	"backoffice/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// RewardRuleInput carries a whole reward rule for Save
type RewardRuleInput struct {
	ID            string           `json:"id"` // Generated when empty
	Rule          string           `json:"rule" validate:"required"`
	StartDate     string           `json:"start_date" validate:"required"`
	EndDate       string           `json:"end_date"`
	Note          string           `json:"note"`
	Status        string           `json:"status"`
	MinSpend      *decimal.Decimal `json:"min_spend"`
	ReferenceCode string           `json:"reference_code"`
	CustomerID    string           `json:"customer_id"`
	Points        int              `json:"points" validate:"gte=0"`
}

// RewardRuleUpdate carries the fields editable after a rule is saved
type RewardRuleUpdate struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status" validate:"required"`
	Note      string `json:"note"`
}

// ConversionRateInput sets how many pesos a number of points is worth
type ConversionRateInput struct {
	Points int             `json:"points" validate:"gt=0"`
	Peso   decimal.Decimal `json:"peso"`
	Date   string          `json:"date"` // Defaults to today
}

// RewardUsecase defines the reward rule and conversion rate use cases
type RewardUsecase interface {
	SaveRule(ctx context.Context, input *RewardRuleInput) (*entity.Result, error)
	ListRules(ctx context.Context) ([]*entity.RewardRule, error)
	GetRule(ctx context.Context, id string) (*entity.RewardRule, error)
	UpdateRule(ctx context.Context, id string, input *RewardRuleUpdate) (*entity.Result, error)
	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	Export(ctx context.Context, format string) (*Export, error)

	SaveConversionRate(ctx context.Context, input *ConversionRateInput) (*entity.Result, error)

	// LatestConversionRate returns the rate in force
	LatestConversionRate(ctx context.Context) (*entity.ConversionRate, error)
}
