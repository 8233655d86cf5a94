package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// DraftHandler stores in-progress form fields.
type DraftHandler struct {
	drafts *services.DraftService
	logger *zap.Logger
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafts *services.DraftService, log *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, logger: logger.OrNop(log)}
}

// RegisterRoutes registers the draft routes with the Fiber app.
func (h *DraftHandler) RegisterRoutes(router fiber.Router) {
	draftRoutes := router.Group("/drafts")
	draftRoutes.Get("/:form", h.HandleLoadDraft)
	draftRoutes.Put("/:form", h.HandleSaveDraft)
	draftRoutes.Delete("/:form", h.HandleClearDraft)
}

// HandleLoadDraft returns the saved fields of a form.
func (h *DraftHandler) HandleLoadDraft(c *fiber.Ctx) error {
	fields, ok, err := h.drafts.Load(c.UserContext(), c.Params("form"))
	if err != nil {
		return respondError(c, h.logger, "Could not load draft", err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No draft saved"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(fields)
}

// HandleSaveDraft replaces the saved fields of a form with the body.
func (h *DraftHandler) HandleSaveDraft(c *fiber.Ctx) error {
	body := json.RawMessage(append([]byte(nil), c.Body()...))
	if err := h.drafts.Save(c.UserContext(), c.Params("form"), body); err != nil {
		return respondError(c, h.logger, "Could not save draft", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleClearDraft deletes the saved fields of a form.
func (h *DraftHandler) HandleClearDraft(c *fiber.Ctx) error {
	if err := h.drafts.Clear(c.UserContext(), c.Params("form")); err != nil {
		return respondError(c, h.logger, "Could not clear draft", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
