package models

import "time"

// User is the authentication record. Email is stored lower-cased.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // No json tag for security
	CreatedAt    time.Time `json:"created_at"`
}
