package handlers

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// MealHandler handles food photo analysis and meal history.
type MealHandler struct {
	session  *services.Session
	meals    *services.MealService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(session *services.Session, meals *services.MealService, log *zap.Logger) *MealHandler {
	return &MealHandler{
		session:  session,
		meals:    meals,
		validate: validator.New(),
		logger:   logger.OrNop(log),
	}
}

// RegisterRoutes registers the meal routes with the Fiber app.
func (h *MealHandler) RegisterRoutes(router fiber.Router) {
	mealRoutes := router.Group("/meals")
	mealRoutes.Post("/analyze", h.HandleAnalyze)
	mealRoutes.Get("/", h.HandleGetMeals)
	mealRoutes.Get("/all", h.HandleGetAllMeals)
}

// AnalyzeRequest carries a food photo, either as a data URL or as raw
// base64 with its MIME type.
type AnalyzeRequest struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mime_type" validate:"omitempty,startswith=image/"`
}

// splitImage returns the MIME type and base64 payload of req.
func splitImage(req AnalyzeRequest) (string, string, error) {
	mimeType, data := req.MimeType, req.Image
	if strings.HasPrefix(data, "data:") {
		header, payload, ok := strings.Cut(strings.TrimPrefix(data, "data:"), ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return "", "", errors.New("image must be a base64 data URL")
		}
		mimeType, data = strings.TrimSuffix(header, ";base64"), payload
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", "", errors.New("image must have an image/* type")
	}
	if _, err := base64.StdEncoding.DecodeString(data); err != nil {
		return "", "", err
	}
	return mimeType, data, nil
}

// HandleAnalyze analyzes a food photo and logs it as a meal.
func (h *MealHandler) HandleAnalyze(c *fiber.Ctx) error {
	owner, err := h.session.MealOwner()
	if err != nil {
		return respondError(c, h.logger, "Could not analyze food", err)
	}
	var req AnalyzeRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not analyze food", err)
	}
	mimeType, data, err := splitImage(req)
	if err != nil {
		return respondError(c, h.logger, "Could not analyze food", &requestError{message: "Invalid image", cause: err})
	}

	var profile *models.Profile
	if p, err := h.session.Profile(); err == nil {
		profile = p
	}
	meal, err := h.meals.Analyze(c.UserContext(), owner, profile, mimeType, data)
	if err != nil {
		return respondError(c, h.logger, "Could not analyze food", err)
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

// HandleGetMeals returns recent meals. ?limit=n caps the list.
func (h *MealHandler) HandleGetMeals(c *fiber.Ctx) error {
	owner, err := h.session.MealOwner()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve meals", err)
	}
	limit := c.QueryInt("limit", services.RecentMeals)
	if limit < 0 {
		return respondError(c, h.logger, "Could not retrieve meals", &requestError{message: "limit must not be negative"})
	}
	meals, err := h.meals.Recent(c.UserContext(), owner, limit)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve meals", err)
	}
	return c.JSON(meals)
}

// HandleGetAllMeals returns every meal of the owner.
func (h *MealHandler) HandleGetAllMeals(c *fiber.Ctx) error {
	owner, err := h.session.MealOwner()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve meals", err)
	}
	meals, err := h.meals.All(c.UserContext(), owner)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve meals", err)
	}
	return c.JSON(meals)
}
