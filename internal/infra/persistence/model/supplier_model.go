package model

import "time"

// SupplierModel is the GORM-specific struct for the 'suppliers' table.
// Blank optional fields are stored as NULL.
type SupplierModel struct {
	ID            string  `gorm:"type:varchar(32);primaryKey"`
	Name          string  `gorm:"type:varchar(255);not null"`
	ContactPerson *string `gorm:"type:varchar(255)"`
	Email         *string `gorm:"type:varchar(255)"`
	Phone         string  `gorm:"type:varchar(50);not null"`
	Address       *string `gorm:"type:text"`
	Notes         *string `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SupplierModel) TableName() string {
	return "suppliers"
}
