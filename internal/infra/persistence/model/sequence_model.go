package model

import "time"

// SequenceModel is the GORM-specific struct for the 'id_sequences' table.
// One row holds the last suffix handed out for a scope and prefix.
type SequenceModel struct {
	Scope     string `gorm:"type:varchar(32);primaryKey"`
	Prefix    string `gorm:"type:varchar(32);primaryKey"`
	LastValue int64  `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SequenceModel) TableName() string {
	return "id_sequences"
}

// SchemaMigrationModel is the GORM-specific struct for the 'schema_migrations' table.
type SchemaMigrationModel struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:varchar(255);not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (SchemaMigrationModel) TableName() string {
	return "schema_migrations"
}
