package models

import "time"

// Task is a daily actionable item.
type Task struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;not null"`
	Text      string    `json:"text" gorm:"not null"`
	Completed bool      `json:"completed" gorm:"index;not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
