package usecase

import (
	"context"

	"backoffice/internal/domain/entity"
)

// CustomerInput carries the editable fields of a customer
type CustomerInput struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"address" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Status     string `json:"status" validate:"required"`
	DateJoined string `json:"date_joined"` // YYYY-MM-DD, defaults to today on create
}

// CustomerUsecase defines the customer management use cases
type CustomerUsecase interface {
	// Create stores a new customer under a generated C- identifier
	Create(ctx context.Context, input *CustomerInput) (*entity.Result, error)

	// Update overwrites a customer and logs every changed field
	Update(ctx context.Context, id string, input *CustomerInput) (*entity.Result, error)

	Get(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, filter entity.CustomerFilter) ([]*entity.Customer, error)
	Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error)

	// PointsEquivalent returns the average peso value of the points a customer earned
	PointsEquivalent(ctx context.Context, id string) (*entity.PointsEquivalent, error)

	Import(ctx context.Context, rows Rows) (*entity.ImportSummary, error)
	Export(ctx context.Context, format string) (*Export, error)
}
