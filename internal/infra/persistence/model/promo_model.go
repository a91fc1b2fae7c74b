package model

import "time"

// PromoModel is the GORM-specific struct for the 'promos' table.
type PromoModel struct {
	Code           string  `gorm:"type:varchar(64);primaryKey"`
	Type           string  `gorm:"type:varchar(50);not null"`
	RuleSummary    string  `gorm:"type:text;not null"`
	StartDate      string  `gorm:"type:varchar(10);not null"`
	EndDate        *string `gorm:"type:varchar(10)"`
	Status         string  `gorm:"type:varchar(20);not null"`
	MaxRedemptions *int
	Redemptions    int    `gorm:"not null;default:0"`
	Note           string `gorm:"type:text;not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (PromoModel) TableName() string {
	return "promos"
}

// PromoRedemptionModel is the GORM-specific struct for the 'promo_redemptions' table.
type PromoRedemptionModel struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	Code       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_promo_redemptions_code_customer"`
	CustomerID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_promo_redemptions_code_customer"`
	OrderID    string    `gorm:"type:varchar(64);not null;default:''"`
	RedeemedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PromoRedemptionModel) TableName() string {
	return "promo_redemptions"
}
