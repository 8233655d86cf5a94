package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// ProfileHandler handles HTTP requests for the active profile.
type ProfileHandler struct {
	session  *services.Session
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(session *services.Session, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		session:  session,
		validate: validator.New(),
		logger:   logger.OrNop(log),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Post("/", h.HandleSetupProfile)
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)
	profileRoutes.Delete("/", h.HandleDeleteProfile)
}

// ProfileRequest is the onboarding form.
type ProfileRequest struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Gender         string   `json:"gender" validate:"omitempty,max=32"`
	Age            *int     `json:"age" validate:"omitempty,gte=1,lte=120"`
	HeightCM       *float64 `json:"height_cm" validate:"omitempty,gt=0,lte=300"`
	WeightKG       *float64 `json:"weight_kg" validate:"omitempty,gt=0,lte=500"`
	TargetWeightKG *float64 `json:"target_weight_kg" validate:"omitempty,gt=0,lte=500"`
	BloodGroup     string   `json:"blood_group" validate:"omitempty,max=8"`

	DietType           string   `json:"diet_type"`
	MealsPerDay        *int     `json:"meals_per_day" validate:"omitempty,gte=1,lte=12"`
	WaterIntakeGlasses *int     `json:"water_intake_glasses" validate:"omitempty,gte=0,lte=50"`
	CaffeineCups       *int     `json:"caffeine_cups" validate:"omitempty,gte=0,lte=30"`
	AlcoholFrequency   string   `json:"alcohol_frequency"`
	SmokingStatus      string   `json:"smoking_status"`
	SubstanceUse       string   `json:"substance_use"`
	ScreenTimeHours    *float64 `json:"screen_time_hours" validate:"omitempty,gte=0,lte=24"`
	HeadphoneHours     *float64 `json:"headphone_hours" validate:"omitempty,gte=0,lte=24"`

	ActivityLevel       string   `json:"activity_level"`
	ExerciseDaysPerWeek *int     `json:"exercise_days_per_week" validate:"omitempty,gte=0,lte=7"`
	SleepHours          *float64 `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	SleepQuality        string   `json:"sleep_quality"`
	AvgSteps            *int     `json:"avg_steps" validate:"omitempty,gte=0"`
	AvgHeartRate        *int     `json:"avg_heart_rate" validate:"omitempty,gte=20,lte=250"`
	HasWearable         bool     `json:"has_wearable"`
	WearableType        string   `json:"wearable_type"`

	MedicalConditions string   `json:"medical_conditions"`
	PastConditions    string   `json:"past_conditions"`
	Allergies         string   `json:"allergies"`
	Medications       []string `json:"medications" validate:"omitempty,dive,max=200"`
	Accessibility     []string `json:"accessibility" validate:"omitempty,dive,max=64"`

	Goal string `json:"goal"`
}

func (r ProfileRequest) toModel() *models.Profile {
	return &models.Profile{
		Name:                r.Name,
		Gender:              r.Gender,
		Age:                 r.Age,
		HeightCM:            r.HeightCM,
		WeightKG:            r.WeightKG,
		TargetWeightKG:      r.TargetWeightKG,
		BloodGroup:          r.BloodGroup,
		DietType:            r.DietType,
		MealsPerDay:         r.MealsPerDay,
		WaterIntakeGlasses:  r.WaterIntakeGlasses,
		CaffeineCups:        r.CaffeineCups,
		AlcoholFrequency:    r.AlcoholFrequency,
		SmokingStatus:       r.SmokingStatus,
		SubstanceUse:        r.SubstanceUse,
		ScreenTimeHours:     r.ScreenTimeHours,
		HeadphoneHours:      r.HeadphoneHours,
		ActivityLevel:       r.ActivityLevel,
		ExerciseDaysPerWeek: r.ExerciseDaysPerWeek,
		SleepHours:          r.SleepHours,
		SleepQuality:        r.SleepQuality,
		AvgSteps:            r.AvgSteps,
		AvgHeartRate:        r.AvgHeartRate,
		HasWearable:         r.HasWearable,
		WearableType:        r.WearableType,
		MedicalConditions:   r.MedicalConditions,
		PastConditions:      r.PastConditions,
		Allergies:           r.Allergies,
		Medications:         r.Medications,
		Accessibility:       r.Accessibility,
		Goal:                r.Goal,
	}
}

// HandleSetupProfile stores the onboarding answers as the active profile.
func (h *ProfileHandler) HandleSetupProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not create profile", err)
	}
	profile, err := h.session.SetupProfile(c.UserContext(), req.toModel())
	if err != nil {
		return respondError(c, h.logger, "Could not create profile", err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// HandleGetProfile returns the active profile.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile, err := h.session.RefreshProfile(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

// HandleUpdateProfile replaces the attributes of the active profile.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not update profile", err)
	}
	profile, err := h.session.UpdateProfile(c.UserContext(), req.toModel())
	if err != nil {
		return respondError(c, h.logger, "Could not update profile", err)
	}
	return c.JSON(profile)
}

// HandleDeleteProfile deletes the active profile and everything recorded for it.
func (h *ProfileHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not delete profile", err)
	}
	if err := h.session.DeleteProfile(c.UserContext(), profile.ID); err != nil {
		return respondError(c, h.logger, "Could not delete profile", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
