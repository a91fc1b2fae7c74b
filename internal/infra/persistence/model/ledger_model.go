package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryModel is the GORM-specific struct for the 'rewards_ledger' table.
type LedgerEntryModel struct {
	ID              string              `gorm:"type:varchar(32);primaryKey"`
	Date            time.Time           `gorm:"not null;index"`
	CustomerID      string              `gorm:"type:varchar(32);not null;index"`
	CustomerName    string              `gorm:"type:varchar(255);not null;default:''"`
	Type            string              `gorm:"type:varchar(20);not null"`
	Points          int                 `gorm:"not null"`
	EquivalentValue decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	ConversionRate  decimal.NullDecimal `gorm:"type:numeric(12,4)"`
	OrderNumber     string              `gorm:"type:varchar(64);not null;default:''"`
	Notes           string              `gorm:"type:text;not null;default:''"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (LedgerEntryModel) TableName() string {
	return "rewards_ledger"
}
