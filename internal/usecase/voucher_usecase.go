package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// SaveVouchersInput describes a batch of vouchers. Exactly one of ID,
// a From/To range or Quantity selects the serials.
type SaveVouchersInput struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	Refill    int    `json:"refill" validate:"gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"`
}

// VoucherUpdate carries the editable fields of a voucher
type VoucherUpdate struct {
	Refill    int    `json:"refill" validate:"gt=0"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// VoucherUsecase defines the prepaid voucher use cases
type VoucherUsecase interface {
	// Save stores a batch of vouchers, skipping serials already taken
	Save(ctx context.Context, input *SaveVouchersInput) (*entity.SaveVouchersOutcome, error)

	List(ctx context.Context, filter entity.VoucherFilter) (*entity.Page[*entity.Voucher], error)
	Get(ctx context.Context, id string) (*entity.Voucher, error)
	Update(ctx context.Context, id string, input *VoucherUpdate) (*entity.Result, error)
	Summary(ctx context.Context) (*entity.VoucherSummary, error)

	// QRCode renders the voucher serial as a PNG
	QRCode(ctx context.Context, id string) ([]byte, error)

	// Lookup resolves scanned QR payload text to its voucher
	Lookup(ctx context.Context, qrData string) (*entity.Voucher, error)

	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	Import(ctx context.Context, rows Rows) (*entity.ImportSummary, error)
	Export(ctx context.Context, format string, filter entity.VoucherFilter) (*Export, error)
}
