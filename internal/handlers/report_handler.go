package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// ReportHandler handles health scans and report history.
type ReportHandler struct {
	session     *services.Session
	reports     *services.ReportService
	environment *services.EnvironmentService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(session *services.Session, reports *services.ReportService, environment *services.EnvironmentService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		session:     session,
		reports:     reports,
		environment: environment,
		validate:    validator.New(),
		logger:      logger.OrNop(log),
	}
}

// RegisterRoutes registers the report routes with the Fiber app.
func (h *ReportHandler) RegisterRoutes(router fiber.Router) {
	reportRoutes := router.Group("/reports")
	reportRoutes.Post("/scan", h.HandleScan)
	reportRoutes.Get("/", h.HandleGetReports)
	reportRoutes.Get("/latest", h.HandleGetLatestReport)
}

// ScanRequest is the body of a health scan.
type ScanRequest struct {
	services.ScanInput
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
}

// HandleScan generates, stores and returns a health report.
func (h *ReportHandler) HandleScan(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not run health scan", err)
	}
	var req ScanRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Could not run health scan", err)
	}

	var env *services.EnvironmentSnapshot
	if h.environment != nil && req.Latitude != nil && req.Longitude != nil {
		snap := h.environment.Snapshot(c.UserContext(), services.Location{Latitude: req.Latitude, Longitude: req.Longitude})
		env = &snap
	}

	report, err := h.reports.Scan(c.UserContext(), profile, req.ScanInput, env)
	if err != nil {
		return respondError(c, h.logger, "Could not run health scan", err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleGetReports returns every report, newest first.
func (h *ReportHandler) HandleGetReports(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve reports", err)
	}
	reports, err := h.reports.List(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve reports", err)
	}
	return c.JSON(reports)
}

// HandleGetLatestReport returns the newest report.
func (h *ReportHandler) HandleGetLatestReport(c *fiber.Ctx) error {
	profile, err := h.session.Profile()
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve report", err)
	}
	report, err := h.reports.Latest(c.UserContext(), profile.ID)
	if err != nil {
		return respondError(c, h.logger, "Could not retrieve report", err)
	}
	return c.JSON(report)
}
