package database

import (
	"context"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ledgerRepository implements the repository.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository is the constructor for ledgerRepository.
func NewLedgerRepository(db *gorm.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Create persists a new ledger entry.
func (repo *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	if err := repo.db.WithContext(ctx).Create(fromLedgerDomain(entry)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateLedgerEntry
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create ledger entry")
	}

	return nil
}

// FindByID retrieves a ledger entry by its identifier.
func (repo *ledgerRepository) FindByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	var entryM model.LedgerEntryModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&entryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrLedgerEntryNotFound
		}

		return nil, errors.Wrap(err, "failed to find ledger entry by ID")
	}

	return toLedgerDomain(&entryM), nil
}

// UpdateNotes replaces the notes of a ledger entry.
func (repo *ledgerRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.LedgerEntryModel{}).
		Where("id = ?", id).
		Update("notes", notes)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update ledger notes")
	}
	if result.RowsAffected == 0 {
		return repository.ErrLedgerEntryNotFound
	}

	return nil
}

// List retrieves ledger entries matching the filter, latest first.
func (repo *ledgerRepository) List(ctx context.Context, filter entity.LedgerFilter) ([]*entity.LedgerEntry, error) {
	query := repo.db.WithContext(ctx).Model(&model.LedgerEntryModel{})
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if !matchesAll(filter.Type) {
		query = query.Where("type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From.UTC())
	}
	if !filter.Until.IsZero() {
		query = query.Where("date < ?", filter.Until.UTC())
	}

	var entryModels []*model.LedgerEntryModel
	if err := query.Order("date DESC").Order("id DESC").Find(&entryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list ledger entries")
	}

	entries := make([]*entity.LedgerEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, toLedgerDomain(entryM))
	}

	return entries, nil
}

// EarnedTotals sums points and equivalent value over a customer's Earned entries.
func (repo *ledgerRepository) EarnedTotals(ctx context.Context, customerID string) (*entity.EarnedTotals, error) {
	var row struct {
		Points int64
		Value  decimal.NullDecimal
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.LedgerEntryModel{}).
		Select("COALESCE(SUM(points), 0) AS points, SUM(equivalent_value) AS value").
		Where("customer_id = ? AND type = ?", customerID, entity.LedgerEarned).
		Scan(&row).Error; err != nil {
		return nil, errors.Wrap(err, "failed to sum earned points")
	}

	return &entity.EarnedTotals{Points: row.Points, Value: row.Value.Decimal}, nil
}

func fromLedgerDomain(e *entity.LedgerEntry) *model.LedgerEntryModel {
	return &model.LedgerEntryModel{
		ID:              e.ID,
		Date:            e.Date.UTC(),
		CustomerID:      e.CustomerID,
		CustomerName:    e.CustomerName,
		Type:            e.Type,
		Points:          e.Points,
		EquivalentValue: toNullDecimal(e.EquivalentValue),
		ConversionRate:  toNullDecimal(e.ConversionRate),
		OrderNumber:     e.OrderNumber,
		Notes:           e.Notes,
	}
}

func toLedgerDomain(m *model.LedgerEntryModel) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:              m.ID,
		Date:            m.Date,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		Type:            m.Type,
		Points:          m.Points,
		EquivalentValue: fromNullDecimal(m.EquivalentValue),
		ConversionRate:  fromNullDecimal(m.ConversionRate),
		OrderNumber:     m.OrderNumber,
		Notes:           m.Notes,
	}
}
