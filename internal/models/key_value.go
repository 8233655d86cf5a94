package models

import (
	"time"

	"gorm.io/datatypes"
)

// KeyValue is a single-slot local cache entry (form drafts, session token).
type KeyValue struct {
	Key       string         `json:"key" gorm:"primaryKey;type:varchar(128)"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SchemaVersion records one applied migration.
type SchemaVersion struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}
