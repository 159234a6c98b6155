package stub

import (
	"atlan-sdk/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CatalogFeature serves the metastore endpoints.
type CatalogFeature struct {
	handler *Handler
}

// NewCatalogFeature creates the metastore feature.
func NewCatalogFeature(store *Store, cfg server.Config, logger *zap.Logger) *CatalogFeature {
	return &CatalogFeature{handler: NewHandler(store, cfg, logger)}
}

// Name returns the name of the feature.
func (f *CatalogFeature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *CatalogFeature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *CatalogFeature) Load(app fiber.Router) error {
	f.handler.RegisterEntityRoutes(app)
	return nil
}

// WorkflowFeature serves the orchestration endpoints.
type WorkflowFeature struct {
	handler *Handler
	enabled bool
}

// NewWorkflowFeature creates the orchestration feature.
func NewWorkflowFeature(store *Store, cfg server.Config, logger *zap.Logger, enabled bool) *WorkflowFeature {
	return &WorkflowFeature{handler: NewHandler(store, cfg, logger), enabled: enabled}
}

// Name returns the name of the feature.
func (f *WorkflowFeature) Name() string {
	return "workflows"
}

// IsEnabled checks if the feature is enabled.
func (f *WorkflowFeature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *WorkflowFeature) Load(app fiber.Router) error {
	f.handler.RegisterWorkflowRoutes(app)
	return nil
}
