package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrRewardRuleNotFound is returned when a reward rule is not found.
	ErrRewardRuleNotFound = errors.New("reward rule not found")
	// ErrConversionRateNotFound is returned when no conversion rate was ever set.
	ErrConversionRateNotFound = errors.New("conversion rate not found")
)

// RewardRepository defines persistence of reward rules and conversion rates.
type RewardRepository interface {
	// SaveRule inserts the rule or replaces the stored one with the same id.
	SaveRule(ctx context.Context, rule *entity.RewardRule) error
	FindRuleByID(ctx context.Context, id string) (*entity.RewardRule, error)
	UpdateRule(ctx context.Context, rule *entity.RewardRule) error
	// ListRules returns rules ordered by start date, latest first.
	ListRules(ctx context.Context) ([]*entity.RewardRule, error)

	CreateConversionRate(ctx context.Context, rate *entity.ConversionRate) error
	// LatestConversionRate returns the rate with the latest date, the most
	// recently stored one on ties.
	LatestConversionRate(ctx context.Context) (*entity.ConversionRate, error)
}
