package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrPromoNotFound is returned when a promo is not found.
	ErrPromoNotFound = errors.New("promo not found")
	// ErrRedemptionNotFound is returned when a customer has not redeemed a promo.
	ErrRedemptionNotFound = errors.New("promo redemption not found")
	// ErrDuplicateRedemption is returned when a customer already redeemed a promo.
	ErrDuplicateRedemption = errors.New("promo already redeemed by customer")
)

// PromoRepository defines promo persistence.
type PromoRepository interface {
	// Save inserts the promo or replaces the stored one with the same code.
	Save(ctx context.Context, promo *entity.Promo) error
	FindByCode(ctx context.Context, code string) (*entity.Promo, error)
	Update(ctx context.Context, promo *entity.Promo) error
	UpdateStatus(ctx context.Context, code, status string) error
	// List returns promos ordered by start date, latest first.
	List(ctx context.Context, filter entity.PromoFilter) ([]*entity.Promo, error)

	FindRedemption(ctx context.Context, code, customerID string) (*entity.PromoRedemption, error)
	CreateRedemption(ctx context.Context, redemption *entity.PromoRedemption) error
	IncrementRedemptions(ctx context.Context, code string) error
}
