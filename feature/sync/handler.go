package sync

import (
	"errors"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the sync feature.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/run", h.HandleRun)
	group.Get("/status", h.HandleStatus)
	group.Get("/cache", h.HandleCacheStats)
	group.Delete("/cache", h.HandleCacheReset)
}

// HandleRun executes one sync pass and returns its summary.
// Pass ?dry_run=1 to decide operations without writing anything.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	opts := Options{DryRun: c.QueryBool("dry_run")}
	l.Info("Sync pass requested", zap.Bool("dry_run", opts.DryRun))

	summary, err := h.service.RunPass(c.Context(), opts)
	if errors.Is(err, ErrPassInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Sync pass failed to start", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(summary)
}

// HandleStatus reports whether a pass is running and the last summary.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	running, last := h.service.Status()
	return c.JSON(fiber.Map{
		"running": running,
		"last":    last,
	})
}

// HandleCacheStats returns entry counts for both persisted caches.
func (h *Handler) HandleCacheStats(c *fiber.Ctx) error {
	records, assets, err := h.service.CacheStats(c.Context())
	if errors.Is(err, ErrPassInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"records": records,
		"assets":  assets,
	})
}

// HandleCacheReset clears both persisted caches. Safe at any time: the next
// pass degrades to scan-based duplicate avoidance, never to duplicates.
func (h *Handler) HandleCacheReset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if err := h.service.ResetState(c.Context()); err != nil {
		if errors.Is(err, ErrPassInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	l.Info("Sync caches cleared")
	return c.SendStatus(fiber.StatusNoContent)
}
