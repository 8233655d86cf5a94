package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// EnvironmentHandler serves weather and air quality.
type EnvironmentHandler struct {
	environment *services.EnvironmentService
	logger      *zap.Logger
}

// NewEnvironmentHandler creates a new EnvironmentHandler.
func NewEnvironmentHandler(environment *services.EnvironmentService, log *zap.Logger) *EnvironmentHandler {
	return &EnvironmentHandler{environment: environment, logger: logger.OrNop(log)}
}

// RegisterRoutes registers the environment route with the Fiber app.
func (h *EnvironmentHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/environment", h.HandleGetEnvironment)
}

// EnvironmentQuery is the query string of an environment lookup.
type EnvironmentQuery struct {
	Latitude  *float64 `query:"lat"`
	Longitude *float64 `query:"lon"`
	GeoError  int      `query:"geo_error"`
}

// HandleGetEnvironment returns the snapshot for ?lat=&lon=, or a message
// when the client reports ?geo_error=.
func (h *EnvironmentHandler) HandleGetEnvironment(c *fiber.Ctx) error {
	var q EnvironmentQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, h.logger, "Could not read location", &requestError{message: "Invalid location", cause: err})
	}
	snap := h.environment.Snapshot(c.UserContext(), services.Location{
		Latitude:  q.Latitude,
		Longitude: q.Longitude,
		GeoError:  q.GeoError,
	})
	return c.JSON(snap)
}
