package assets

import (
	"bytes"

	"scene-manager/core/logger"
	"scene-manager/core/registry"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for asset management.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the assets routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assets")
	group.Get("/", h.HandleList)
	group.Post("/:category/:name", h.HandleUpload)
	group.Get("/object/*", h.HandleDownload)
	group.Delete("/object/*", h.HandleDelete)
	group.Get("/inspect/*", h.HandleInspect)
}

// HandleList lists stored assets, optionally filtered by prefix.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	objects, err := h.service.List(c.Context(), c.Query("prefix"))
	if err != nil {
		l.Error("Asset listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"assets": objects, "count": len(objects)})
}

// HandleUpload stores the request body as a new asset.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cat, err := registry.ParseCategory(c.Params("category"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty request body"})
	}

	key, err := h.service.Upload(c.Context(), cat, c.Params("name"), bytes.NewReader(body), int64(len(body)))
	if err != nil {
		l.Error("Asset upload failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

// HandleDownload streams an asset back to the client.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key := c.Params("*")

	rc, err := h.service.Download(c.Context(), key)
	if err != nil {
		l.Error("Asset download failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStream(rc)
}

// HandleDelete removes an asset.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key := c.Params("*")

	if err := h.service.Delete(c.Context(), key); err != nil {
		l.Error("Asset deletion failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted", "key": key})
}

// HandleInspect decodes an asset and returns its summary. Every query
// param is passed to the loader, so ?dimensions=2x2x2&voxelType=uchar
// describes a RAW brick.
func (h *Handler) HandleInspect(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	key := c.Params("*")

	params := make(map[string]string)
	for k, v := range c.Queries() {
		params[k] = v
	}

	report, err := h.service.Inspect(c.Context(), key, params)
	if err != nil {
		l.Error("Asset inspection failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
