package models

import "time"

// ProfileSchemaVersion is bumped whenever Profile gains fields.
const ProfileSchemaVersion = 1

// Profile holds the demographic, lifestyle, medical and goal attributes
// collected during onboarding. Optional numeric attributes are pointers so
// "not answered" stays distinguishable from zero.
type Profile struct {
	ID            uint `json:"id" gorm:"primaryKey"`
	UserID        uint `json:"user_id" gorm:"index;not null"`
	SchemaVersion int  `json:"schema_version" gorm:"not null;default:1"`

	Name           string   `json:"name" gorm:"type:varchar(100);not null"`
	Gender         string   `json:"gender,omitempty"`
	Age            *int     `json:"age,omitempty"`
	HeightCM       *float64 `json:"height_cm,omitempty"`
	WeightKG       *float64 `json:"weight_kg,omitempty"`
	TargetWeightKG *float64 `json:"target_weight_kg,omitempty"`
	BloodGroup     string   `json:"blood_group,omitempty"`

	DietType           string   `json:"diet_type,omitempty"`
	MealsPerDay        *int     `json:"meals_per_day,omitempty"`
	WaterIntakeGlasses *int     `json:"water_intake_glasses,omitempty"`
	CaffeineCups       *int     `json:"caffeine_cups,omitempty"`
	AlcoholFrequency   string   `json:"alcohol_frequency,omitempty"`
	SmokingStatus      string   `json:"smoking_status,omitempty"`
	SubstanceUse       string   `json:"substance_use,omitempty"`
	ScreenTimeHours    *float64 `json:"screen_time_hours,omitempty"`
	HeadphoneHours     *float64 `json:"headphone_hours,omitempty"`

	ActivityLevel       string   `json:"activity_level,omitempty"`
	ExerciseDaysPerWeek *int     `json:"exercise_days_per_week,omitempty"`
	SleepHours          *float64 `json:"sleep_hours,omitempty"`
	SleepQuality        string   `json:"sleep_quality,omitempty"`
	AvgSteps            *int     `json:"avg_steps,omitempty"`
	AvgHeartRate        *int     `json:"avg_heart_rate,omitempty"`
	HasWearable         bool     `json:"has_wearable"`
	WearableType        string   `json:"wearable_type,omitempty"`

	MedicalConditions string   `json:"medical_conditions,omitempty"`
	PastConditions    string   `json:"past_conditions,omitempty"`
	Allergies         string   `json:"allergies,omitempty"`
	Medications       []string `json:"medications,omitempty" gorm:"serializer:json"`
	Accessibility     []string `json:"accessibility,omitempty" gorm:"serializer:json"`

	Goal string `json:"goal,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
