package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// BillerInput carries the editable fields of a biller
type BillerInput struct {
	CompanyName string `json:"company_name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Status      string `json:"status"` // Defaults to Active
}

// ContactInput carries the editable fields of a biller contact
type ContactInput struct {
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
	Status   string `json:"status"`                                                // Defaults to Active
	Position string `json:"position" validate:"omitempty,oneof=Primary Secondary"` // Defaults to Secondary
}

// ContactUpdate identifies the contact a ContactInput applies to
type ContactUpdate struct {
	ID uint64 `json:"id" validate:"required"`
	ContactInput
}

// BillerUsecase defines the biller management use cases
type BillerUsecase interface {
	// Create stores a new biller under a generated B- identifier
	Create(ctx context.Context, input *BillerInput) (*entity.Result, error)

	// Get returns a biller with all of its contacts
	Get(ctx context.Context, id string) (*entity.BillerDetail, error)

	// List returns every biller with its primary contact
	List(ctx context.Context) ([]*entity.Biller, error)

	Update(ctx context.Context, id string, input *BillerInput) (*entity.Result, error)

	AddContact(ctx context.Context, billerID string, input *ContactInput) (*entity.Result, error)

	// UpdateContacts applies several contact edits in one transaction, logged under the biller
	UpdateContacts(ctx context.Context, billerID string, updates []*ContactUpdate) (*entity.Result, error)

	Contacts(ctx context.Context, billerID string) ([]*entity.BillerContact, error)
	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)
	Import(ctx context.Context, rows Rows) (*entity.ImportSummary, error)
	Export(ctx context.Context, format string) (*Export, error)
}
