package model

import "time"

// BillerModel is the GORM-specific struct for the 'billers' table.
type BillerModel struct {
	ID          string `gorm:"type:varchar(32);primaryKey"`
	CompanyName string `gorm:"type:varchar(255);not null"`
	Email       string `gorm:"type:varchar(255);not null;default:''"`
	Phone       string `gorm:"type:varchar(50);not null"`
	Address     string `gorm:"type:text;not null"`
	Status      string `gorm:"type:varchar(50);not null;default:'Active'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Contacts []*BillerContactModel `gorm:"foreignKey:BillerID"`
}

// TableName explicitly sets the table name for GORM.
func (BillerModel) TableName() string {
	return "billers"
}

// BillerContactModel is the GORM-specific struct for the 'biller_contacts' table.
type BillerContactModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	BillerID  string `gorm:"type:varchar(32);not null;index"`
	Name      string `gorm:"type:varchar(255);not null"`
	Mobile    string `gorm:"type:varchar(50);not null"`
	Status    string `gorm:"type:varchar(50);not null;default:'Active'"`
	Position  string `gorm:"type:varchar(50);not null;default:'Secondary'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BillerContactModel) TableName() string {
	return "biller_contacts"
}
