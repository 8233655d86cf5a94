package models

import (
	"fmt"
	"time"
)

// MealOwner is either a profile or the temporary pseudo-profile of a user
// who has not finished onboarding yet.
type MealOwner struct {
	ProfileID uint
	UserID    uint
}

// Key returns the owner key stored on meals.
func (o MealOwner) Key() string {
	if o.ProfileID != 0 {
		return fmt.Sprintf("profile:%d", o.ProfileID)
	}
	return fmt.Sprintf("temp_%d", o.UserID)
}

// Meal is a logged food entry. Meals are append-only.
type Meal struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	OwnerKey    string       `json:"owner_key" gorm:"type:varchar(64);index;not null"`
	ProfileID   *uint        `json:"profile_id,omitempty" gorm:"index"`
	PhotoData   string       `json:"photo_data,omitempty"`
	Ingredients []string     `json:"ingredients" gorm:"serializer:json"`
	Calories    int          `json:"calories"`
	Analysis    FoodAnalysis `json:"analysis" gorm:"serializer:json"`
	CreatedAt   time.Time    `json:"created_at" gorm:"index"`
}

// FoodAnalysis mirrors the JSON document requested for a food photo.
type FoodAnalysis struct {
	FoodName          string         `json:"foodName"`
	Ingredients       []string       `json:"ingredients"`
	EstimatedCalories int            `json:"estimatedCalories"`
	NutritionScore    string         `json:"nutritionScore"`
	HealthAnalysis    string         `json:"healthAnalysis"`
	AllergyWarning    AllergyWarning `json:"allergyWarning"`
	GoalAlignment     GoalAlignment  `json:"goalAlignment"`
	Recommendations   []string       `json:"recommendations"`
}

type AllergyWarning struct {
	HasAllergen bool     `json:"hasAllergen"`
	Allergens   []string `json:"allergens"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
}

type GoalAlignment struct {
	Goal      string `json:"goal"`
	IsAligned bool   `json:"isAligned"`
	Reason    string `json:"reason"`
}
