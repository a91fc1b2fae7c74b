package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardRuleModel is the GORM-specific struct for the 'reward_rules' table.
type RewardRuleModel struct {
	ID            string              `gorm:"type:varchar(32);primaryKey"`
	Rule          string              `gorm:"type:text;not null"`
	StartDate     string              `gorm:"type:varchar(10);not null"`
	EndDate       *string             `gorm:"type:varchar(10)"`
	Note          string              `gorm:"type:text;not null;default:''"`
	Status        string              `gorm:"type:varchar(20);not null;default:'Active'"`
	MinSpend      decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	ReferenceCode string              `gorm:"type:varchar(64);not null;default:''"`
	CustomerID    string              `gorm:"type:varchar(32);not null;default:''"`
	Points        int                 `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (RewardRuleModel) TableName() string {
	return "reward_rules"
}

// ConversionRateModel is the GORM-specific struct for the 'conversion_rates' table.
type ConversionRateModel struct {
	ID        uint64          `gorm:"primaryKey;autoIncrement"`
	Points    int             `gorm:"not null"`
	Peso      decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	Date      string          `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ConversionRateModel) TableName() string {
	return "conversion_rates"
}
