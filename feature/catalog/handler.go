package catalog

import (
	"errors"

	"scene-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes. Reconciliation reports
// over GET; the repairing variant mutates records, so it runs over
// POST only.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/catalog", h.HandleList)
	app.Get("/catalog/reconcile", h.HandleReconcileReport)
	app.Post("/catalog/reconcile", h.HandleReconcileFix)
	app.Get("/catalog/:id", h.HandleGet)
	app.Delete("/catalog/:id", h.HandleDelete)
}

// HandleList returns catalog records.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	records, err := h.service.List(c.Context(), limit, offset)
	if err != nil {
		l.Error("Failed to list catalog records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list catalog records"})
	}
	return c.JSON(fiber.Map{"records": records, "count": len(records)})
}

// HandleGet returns one catalog record.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	rec, err := h.service.Get(c.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "catalog record not found"})
	}
	if err != nil {
		l.Error("Failed to fetch catalog record", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch catalog record"})
	}
	return c.JSON(rec)
}

// HandleDelete removes one catalog record.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	id := c.Params("id")

	err := h.service.Delete(c.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "catalog record not found"})
	}
	if err != nil {
		l.Error("Failed to delete catalog record", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete catalog record"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReconcileReport runs a report-only reconciliation pass.
func (h *Handler) HandleReconcileReport(c *fiber.Ctx) error {
	return h.reconcile(c, false)
}

// HandleReconcileFix runs a reconciliation pass that applies repairs.
func (h *Handler) HandleReconcileFix(c *fiber.Ctx) error {
	return h.reconcile(c, true)
}

func (h *Handler) reconcile(c *fiber.Ctx, fix bool) error {
	l := logger.WithRayID(h.service.logger, c)

	l.Info("Reconciling catalog", zap.Bool("fix", fix))
	report, err := h.service.Reconcile(c.Context(), fix)
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
