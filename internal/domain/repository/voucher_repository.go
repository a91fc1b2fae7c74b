package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrVoucherNotFound is returned when a voucher is not found.
	ErrVoucherNotFound = errors.New("voucher not found")
	// ErrDuplicateVoucher is returned when a voucher id is already taken.
	ErrDuplicateVoucher = errors.New("voucher already exists")
)

// VoucherRepository defines voucher persistence.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *entity.Voucher) error
	FindByID(ctx context.Context, id string) (*entity.Voucher, error)
	// ExistingIDs returns the subset of ids that are already stored.
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
	Update(ctx context.Context, voucher *entity.Voucher) error
	UpdateStatus(ctx context.Context, id, status string) error
	// List returns one page of vouchers ordered by id and the total number
	// of matches. A non-positive limit returns every match.
	List(ctx context.Context, filter entity.VoucherFilter) ([]*entity.Voucher, int64, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}
