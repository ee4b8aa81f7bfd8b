package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/services - List active services
	r.Get("/api/services", catalogHandler.GetAllServices)

	// GET /api/services/{id} - Service details
	r.Get("/api/services/{id}", catalogHandler.GetService)

	// GET /api/resources - List resources with working hours
	r.Get("/api/resources", catalogHandler.GetAllResources)

	// GET /api/resources/{id} - Resource details
	r.Get("/api/resources/{id}", catalogHandler.GetResource)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/services", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.APIKey, log))

		// POST /api/admin/services - Create service
		r.Post("/", catalogHandler.CreateService)

		// PUT /api/admin/services/{id} - Update service
		r.Put("/{id}", catalogHandler.UpdateService)

		// DELETE /api/admin/services/{id} - Deactivate service
		r.Delete("/{id}", catalogHandler.DeactivateService)
	})

	r.Route("/api/admin/resources", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.APIKey, log))

		// POST /api/admin/resources - Create resource with weekly hours
		r.Post("/", catalogHandler.CreateResource)

		// PUT /api/admin/resources/{id} - Update resource and hours
		r.Put("/{id}", catalogHandler.UpdateResource)

		// DELETE /api/admin/resources/{id} - Remove resource
		r.Delete("/{id}", catalogHandler.DeleteResource)
	})
}
