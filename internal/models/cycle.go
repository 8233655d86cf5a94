package models

import "time"

// Cycle is a menstrual cycle entry. Dates carry no time of day.
type Cycle struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	ProfileID uint       `json:"profile_id" gorm:"index;not null"`
	StartDate time.Time  `json:"start_date" gorm:"index;not null"`
	EndDate   *time.Time `json:"end_date"`
	Notes     string     `json:"notes"`
}

// CyclePatch carries the fields of a cycle that may change.
type CyclePatch struct {
	StartDate *time.Time
	EndDate   *time.Time
	Notes     *string
}
