package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBundle(
	r chi.Router,
	bundleHandler *adaptor.BundleHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/bundles - List active bundles
	r.Get("/api/bundles", bundleHandler.GetAllBundles)

	// GET /api/bundles/{id} - Bundle details
	r.Get("/api/bundles/{id}", bundleHandler.GetBundle)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bundles", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.APIKey, log))

		// POST /api/admin/bundles - Create bundle
		r.Post("/", bundleHandler.CreateBundle)

		// PUT /api/admin/bundles/{id} - Update bundle
		r.Put("/{id}", bundleHandler.UpdateBundle)

		// DELETE /api/admin/bundles/{id} - Deactivate bundle
		r.Delete("/{id}", bundleHandler.DeactivateBundle)
	})
}
