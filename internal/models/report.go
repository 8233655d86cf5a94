package models

import "time"

// ReportSchemaVersion describes the shape of HealthReport.
const ReportSchemaVersion = 1

// Report is an AI-generated health report. Reports are append-only.
type Report struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	ProfileID     uint         `json:"profile_id" gorm:"index;not null"`
	SchemaVersion int          `json:"schema_version" gorm:"not null;default:1"`
	Content       HealthReport `json:"content" gorm:"serializer:json"`
	CreatedAt     time.Time    `json:"created_at" gorm:"index"`
}

// HealthReport mirrors the JSON document requested from the AI service.
type HealthReport struct {
	HealthSnapshot        HealthSnapshot        `json:"healthSnapshot"`
	Metrics               []ReportMetric        `json:"metrics"`
	Recommendations       []Recommendation      `json:"recommendations"`
	LifestyleOptimization LifestyleOptimization `json:"lifestyleOptimization"`
	Nutrition             NutritionAdvice       `json:"nutrition"`
	DosAndDonts           DosAndDonts           `json:"dosAndDonts"`
	Environmental         EnvironmentalAdvice   `json:"environmental"`
	WeeklyPlan            []DayPlan             `json:"weeklyPlan"`
	DashboardSummary      []string              `json:"dashboardSummary"`
}

type HealthSnapshot struct {
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

type ReportMetric struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type Recommendation struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
	Impact string `json:"impact"`
}

type LifestyleOptimization struct {
	Sleep      string `json:"sleep"`
	ScreenTime string `json:"screenTime"`
	Stress     string `json:"stress"`
}

type NutritionAdvice struct {
	Suggestions []string `json:"suggestions"`
	Hydration   string   `json:"hydration"`
}

type DosAndDonts struct {
	Dos   []string `json:"dos"`
	Donts []string `json:"donts"`
}

type EnvironmentalAdvice struct {
	Suggestion string `json:"suggestion"`
	AlertLevel string `json:"alertLevel"`
}

type DayPlan struct {
	Day   string `json:"day"`
	Focus string `json:"focus"`
}
