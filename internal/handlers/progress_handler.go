package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// ProgressHandler serves the streak and the badge grid.
type ProgressHandler struct {
	session *services.Session
	streaks *services.StreakService
	badges  *services.BadgeService
	logger  *zap.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(session *services.Session, streaks *services.StreakService, badges *services.BadgeService, log *zap.Logger) *ProgressHandler {
	return &ProgressHandler{session: session, streaks: streaks, badges: badges, logger: logger.OrNop(log)}
}

// RegisterRoutes registers the streak and badge routes with the Fiber app.
func (h *ProgressHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/streak", h.HandleGetStreak)
	router.Get("/badges", h.HandleGetBadges)
}

// HandleGetStreak returns the active profile's streak.
func (h *ProgressHandler) HandleGetStreak(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve streak", err)
	}
	streak, err := h.streaks.Get(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve streak", err)
	}
	return c.JSON(streak)
}

// HandleGetBadges returns the badge grid of the active profile.
func (h *ProgressHandler) HandleGetBadges(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve badges", err)
	}
	grid, err := h.badges.Grid(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve badges", err)
	}
	return c.JSON(grid)
}
