package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrBillerNotFound is returned when a biller is not found.
	ErrBillerNotFound = errors.New("biller not found")
	// ErrDuplicateBiller is returned when a biller id is already taken.
	ErrDuplicateBiller = errors.New("biller already exists")
	// ErrContactNotFound is returned when a biller contact is not found.
	ErrContactNotFound = errors.New("biller contact not found")
)

// BillerRepository defines biller and biller contact persistence.
type BillerRepository interface {
	Create(ctx context.Context, biller *entity.Biller) error
	FindByID(ctx context.Context, id string) (*entity.Biller, error)
	Update(ctx context.Context, biller *entity.Biller) error
	// List returns billers ordered by company name with their primary contact filled in.
	List(ctx context.Context) ([]*entity.Biller, error)
	// FindByCompanyAndEmail is the import duplicate lookup.
	FindByCompanyAndEmail(ctx context.Context, companyName, email string) (*entity.Biller, error)

	CreateContact(ctx context.Context, contact *entity.BillerContact) error
	FindContactByID(ctx context.Context, id uint64) (*entity.BillerContact, error)
	UpdateContact(ctx context.Context, contact *entity.BillerContact) error
	ListContacts(ctx context.Context, billerID string) ([]*entity.BillerContact, error)
}
