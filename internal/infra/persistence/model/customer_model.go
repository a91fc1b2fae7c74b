package model

import "time"

// CustomerModel is the GORM-specific struct for the 'customers' table.
type CustomerModel struct {
	ID         string `gorm:"type:varchar(32);primaryKey"`
	FirstName  string `gorm:"type:varchar(255);not null"`
	LastName   string `gorm:"type:varchar(255);not null;default:''"`
	Phone      string `gorm:"type:varchar(50);not null"`
	Email      string `gorm:"type:varchar(255);not null;default:''"`
	Address    string `gorm:"type:text;not null"`
	Type       string `gorm:"type:varchar(50);not null"`
	Status     string `gorm:"type:varchar(50);not null"`
	DateJoined string `gorm:"type:varchar(10);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
