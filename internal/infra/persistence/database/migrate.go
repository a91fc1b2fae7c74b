package database

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/errors"
	"backoffice/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// migration is one schema step. Steps run in version order, each in its own
// transaction, and are recorded in schema_migrations once applied.
type migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

var migrations = []migration{
	{Version: 1, Name: "base tables", Up: createBaseTables},
	{Version: 2, Name: "item status", Up: addItemStatus},
	{Version: 3, Name: "lookup indexes", Up: createLookupIndexes},
}

// itemV1 is the items table as first shipped, before items could be archived.
type itemV1 struct {
	ID           string          `gorm:"type:varchar(16);primaryKey"`
	GroupID      string          `gorm:"type:varchar(2);not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text;not null;default:''"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	ReorderLevel int             `gorm:"not null;default:0"`
	Barcode      *string         `gorm:"type:varchar(64)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (itemV1) TableName() string {
	return "items"
}

func createBaseTables(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&model.SequenceModel{},
		&model.ChangeLogModel{},
		&model.CustomerModel{},
		&model.BillerModel{},
		&model.BillerContactModel{},
		&model.ItemGroupModel{},
		&itemV1{},
		&model.SupplierModel{},
		&model.PromoModel{},
		&model.PromoRedemptionModel{},
		&model.VoucherModel{},
		&model.RewardRuleModel{},
		&model.ConversionRateModel{},
		&model.LedgerEntryModel{},
	)
}

func addItemStatus(tx *gorm.DB) error {
	if tx.Migrator().HasColumn(&model.ItemModel{}, "Status") {
		return nil
	}

	return tx.Migrator().AddColumn(&model.ItemModel{}, "Status")
}

func createLookupIndexes(tx *gorm.DB) error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_change_logs_entity ON change_logs (namespace, entity_id, timestamp)",
		"CREATE INDEX IF NOT EXISTS idx_customers_identity ON customers (first_name, last_name, phone)",
		"CREATE INDEX IF NOT EXISTS idx_billers_company_email ON billers (company_name, email)",
		"CREATE INDEX IF NOT EXISTS idx_items_group_name ON items (group_id, name)",
		"CREATE INDEX IF NOT EXISTS idx_suppliers_name ON suppliers (name)",
		"CREATE INDEX IF NOT EXISTS idx_promos_start_date ON promos (start_date)",
	}
	for _, stmt := range statements {
		if err := tx.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "failed to run %q", stmt)
		}
	}

	return nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&model.SchemaMigrationModel{}); err != nil {
		return errors.Wrap(err, "failed to create schema_migrations")
	}

	var applied []int
	if err := db.Model(&model.SchemaMigrationModel{}).Pluck("version", &applied).Error; err != nil {
		return errors.Wrap(err, "failed to read applied migrations")
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.Version] {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}

			return tx.Create(&model.SchemaMigrationModel{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return errors.Wrapf(err, "migration %d (%s) failed", m.Version, m.Name)
		}

		if logger != nil {
			logger.InfoContext(ctx, "Applied migration", slog.Int("version", m.Version), slog.String("name", m.Name))
		}
	}

	return nil
}
