package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemGroupModel is the GORM-specific struct for the 'item_groups' table.
type ItemGroupModel struct {
	ID        string `gorm:"type:varchar(2);primaryKey"`
	Name      string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemGroupModel) TableName() string {
	return "item_groups"
}

// ItemModel is the GORM-specific struct for the 'items' table.
// The status column is added by a later migration.
type ItemModel struct {
	ID           string          `gorm:"type:varchar(16);primaryKey"`
	GroupID      string          `gorm:"type:varchar(2);not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text;not null;default:''"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	ReorderLevel int             `gorm:"not null;default:0"`
	Barcode      *string         `gorm:"type:varchar(64)"`
	Status       string          `gorm:"type:varchar(20);not null;default:'Active'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}
