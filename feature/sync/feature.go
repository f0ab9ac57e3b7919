package sync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the sync service into the application's feature loader.
type Feature struct {
	service *Service
	logger  *zap.Logger
	enabled bool
}

// NewFeature creates the sync feature.
func NewFeature(service *Service, logger *zap.Logger, enabled bool) *Feature {
	return &Feature{service: service, logger: logger, enabled: enabled}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "sync" }

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool { return f.enabled }

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	handler := NewHandler(f.service, f.logger)
	handler.RegisterRoutes(app)
	return nil
}
