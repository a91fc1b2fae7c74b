package model

import "time"

// ChangeLogModel is the GORM-specific struct for the append-only 'change_logs' table.
type ChangeLogModel struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Namespace string    `gorm:"type:varchar(32);not null"`
	EntityID  string    `gorm:"type:varchar(64);not null"`
	Subject   string    `gorm:"type:varchar(32);not null"`
	SubjectID string    `gorm:"type:varchar(64);not null"`
	Field     string    `gorm:"type:varchar(64);not null"`
	FromValue string    `gorm:"column:from_value;type:text;not null;default:''"`
	ToValue   string    `gorm:"column:to_value;type:text;not null;default:''"`
	Timestamp time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ChangeLogModel) TableName() string {
	return "change_logs"
}
