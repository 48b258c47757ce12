package formats

import (
	"scene-manager/core/logger"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for format discovery.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the formats routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/formats", h.HandleListFormats)
}

// HandleListFormats returns the registered loader tags per category.
func (h *Handler) HandleListFormats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Listing registered formats")
	return c.JSON(fiber.Map{"formats": h.service.Formats()})
}
