package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// SupplierInput carries the editable fields of a supplier
type SupplierInput struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// SupplierUsecase defines the supplier management use cases
type SupplierUsecase interface {
	List(ctx context.Context) ([]*entity.Supplier, error)
	Get(ctx context.Context, id string) (*entity.Supplier, error)
	Create(ctx context.Context, input *SupplierInput) (*entity.Result, error)
	Update(ctx context.Context, id string, input *SupplierInput) (*entity.Result, error)
	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	Import(ctx context.Context, rows Rows) (*entity.ImportSummary, error)
	Export(ctx context.Context, format string) (*Export, error)
}
