package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrSupplierNotFound is returned when a supplier is not found.
	ErrSupplierNotFound = errors.New("supplier not found")
	// ErrDuplicateSupplier is returned when a supplier id is already taken.
	ErrDuplicateSupplier = errors.New("supplier already exists")
)

// SupplierRepository defines supplier persistence.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	FindByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	// List returns suppliers ordered by name.
	List(ctx context.Context) ([]*entity.Supplier, error)
	// FindByNameAndEmail is the import duplicate lookup. An empty email also
	// matches suppliers stored without one.
	FindByNameAndEmail(ctx context.Context, name, email string) (*entity.Supplier, error)
}
