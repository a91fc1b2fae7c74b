package repository

import (
	"context"

	"backoffice/internal/domain/entity"
	"backoffice/internal/errors"
)

var (
	// ErrLedgerEntryNotFound is returned when a ledger entry is not found.
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")
	// ErrDuplicateLedgerEntry is returned when a ledger id is already taken.
	ErrDuplicateLedgerEntry = errors.New("ledger entry already exists")
)

// LedgerRepository defines rewards ledger persistence.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	FindByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	UpdateNotes(ctx context.Context, id, notes string) error
	// List returns entries ordered by date, latest first.
	List(ctx context.Context, filter entity.LedgerFilter) ([]*entity.LedgerEntry, error)
	// EarnedTotals sums points and equivalent value of a customer's Earned entries.
	EarnedTotals(ctx context.Context, customerID string) (*entity.EarnedTotals, error)
}
