package model

import "time"

// VoucherModel is the GORM-specific struct for the 'vouchers' table.
type VoucherModel struct {
	ID        string  `gorm:"type:varchar(10);primaryKey"`
	Refill    int     `gorm:"not null"`
	StartDate string  `gorm:"type:varchar(10);not null"`
	EndDate   *string `gorm:"type:varchar(10)"`
	Status    string  `gorm:"type:varchar(20);not null;index"`
	DateAdded string  `gorm:"type:varchar(10);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (VoucherModel) TableName() string {
	return "vouchers"
}
