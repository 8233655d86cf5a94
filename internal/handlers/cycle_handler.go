package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/models"
	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

const dateLayout = "2006-01-02"

// CycleHandler handles cycle logging and prediction.
type CycleHandler struct {
	session  *services.Session
	cycles   *services.CycleService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCycleHandler creates a new CycleHandler.
func NewCycleHandler(session *services.Session, cycles *services.CycleService, log *zap.Logger) *CycleHandler {
	return &CycleHandler{
		session:  session,
		cycles:   cycles,
		validate: validator.New(),
		logger:   logger.OrNop(log),
	}
}

// RegisterRoutes registers the cycle routes with the Fiber app.
func (h *CycleHandler) RegisterRoutes(router fiber.Router) {
	cycleRoutes := router.Group("/cycles")
	cycleRoutes.Get("/", h.HandleGetCycles)
	cycleRoutes.Post("/", h.HandleLogCycle)
	cycleRoutes.Patch("/:id", h.HandleUpdateCycle)
	cycleRoutes.Post("/:id/end", h.HandleEndCycle)
}

// CycleRequest is the body of a new cycle entry.
type CycleRequest struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string  `json:"notes" validate:"max=1000"`
}

// CyclePatchRequest is the body of a cycle update.
type CyclePatchRequest struct {
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes" validate:"omitempty,max=1000"`
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	// validated by the datetime tag
	t, _ := time.Parse(dateLayout, *s)
	return &t
}

// HandleGetCycles returns the cycle history and the current prediction.
func (h *CycleHandler) HandleGetCycles(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve cycles", err)
	}
	cycles, err := h.cycles.List(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve cycles", err)
	}
	prediction, err := h.cycles.Predict(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve cycles", err)
	}
	return c.JSON(fiber.Map{"cycles": cycles, "prediction": prediction})
}

// HandleLogCycle records the start of a cycle.
func (h *CycleHandler) HandleLogCycle(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not log cycle", err)
	}
	var req CycleRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not log cycle", err)
	}
	cycle, err := h.cycles.Log(c.UserContext(), profile.ID, *parseDate(&req.StartDate), parseDate(req.EndDate), req.Notes)
	if err != nil {
		return respondError(c, h.logger, "Could not log cycle", err)
	}
	return c.Status(fiber.StatusCreated).JSON(cycle)
}

// HandleUpdateCycle changes the dates or notes of a cycle.
func (h *CycleHandler) HandleUpdateCycle(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not update cycle", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Could not update cycle", err)
	}
	var req CyclePatchRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not update cycle", err)
	}
	patch := models.CyclePatch{
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
		Notes:     req.Notes,
	}
	cycle, err := h.cycles.Update(c.UserContext(), profile.ID, id, patch)
	if err != nil {
		return respondError(c, h.logger, "Could not update cycle", err)
	}
	return c.JSON(cycle)
}

// HandleEndCycle marks a cycle as ended today.
func (h *CycleHandler) HandleEndCycle(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not end cycle", err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.logger, "Could not end cycle", err)
	}
	cycle, err := h.cycles.End(c.UserContext(), profile.ID, id)
	if err != nil {
		return respondError(c, h.logger, "Could not end cycle", err)
	}
	return c.JSON(cycle)
}
