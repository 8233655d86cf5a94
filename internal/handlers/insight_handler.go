package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// InsightHandler serves AI dashboard insights.
type InsightHandler struct {
	session     *services.Session
	insights    *services.InsightService
	environment *services.EnvironmentService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(session *services.Session, insights *services.InsightService, environment *services.EnvironmentService, log *zap.Logger) *InsightHandler {
	return &InsightHandler{
		session:     session,
		insights:    insights,
		environment: environment,
		validate:    validator.New(),
		logger:      logger.OrNop(log),
	}
}

// RegisterRoutes registers the insight routes with the Fiber app.
func (h *InsightHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/insights", h.HandleDashboardInsights)
}

// InsightRequest carries the dashboard metrics and an optional location.
type InsightRequest struct {
	services.DashboardMetrics
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// HandleDashboardInsights returns insight cards for the dashboard.
func (h *InsightHandler) HandleDashboardInsights(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not generate insights", err)
	}
	var req InsightRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not generate insights", err)
	}

	snap := services.EnvironmentSnapshot{}
	if h.environment != nil && req.Latitude != nil && req.Longitude != nil {
		snap = h.environment.Snapshot(c.UserContext(), services.Location{Latitude: req.Latitude, Longitude: req.Longitude})
	}

	insights, err := h.insights.DashboardInsights(c.UserContext(), profile, req.DashboardMetrics, snap.Weather)
	if err != nil {
		return respondError(c, h.logger, "Could not generate insights", err)
	}
	return c.JSON(insights)
}
