package models

import "time"

// Streak counts consecutive days of engagement. One row per profile.
type Streak struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	ProfileID  uint       `json:"profile_id" gorm:"uniqueIndex;not null"`
	Current    int        `json:"current" gorm:"not null;default:0"`
	Longest    int        `json:"longest" gorm:"not null;default:0"`
	LastActive *time.Time `json:"last_active"`
}
