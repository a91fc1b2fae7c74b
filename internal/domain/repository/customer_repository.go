package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDuplicateCustomer is returned when a customer id is already taken.
	ErrDuplicateCustomer = errors.New("customer already exists")
)

// CustomerRepository defines customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// List returns customers ordered by creation, newest first.
	List(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error)
	// FindByNameAndPhone is the import duplicate lookup.
	FindByNameAndPhone(ctx context.Context, firstName, lastName, phone string) (*entity.Customer, error)
}
