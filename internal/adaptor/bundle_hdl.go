package adaptor

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/dto/request"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BundleHandler struct {
	service usecase.BundleService
	log     *zap.Logger
}

func NewBundleHandler(service usecase.BundleService, log *zap.Logger) *BundleHandler {
	return &BundleHandler{
		service: service,
		log:     log.With(zap.String("handler", "bundle")),
	}
}

// GetAllBundles handles GET /api/bundles (public)
func (h *BundleHandler) GetAllBundles(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.service.GetAllBundles(r.Context())
	if err != nil {
		respondServiceError(h.log, w, err, "get all bundles")
		return
	}

	utils.ResponseSuccess(w, "success", bundles)
}

// GetBundle handles GET /api/bundles/{id} (public)
func (h *BundleHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	bundleID := chi.URLParam(r, "id")
	if bundleID == "" {
		utils.ResponseBadRequest(w, "Bundle ID is required", nil)
		return
	}

	bundle, err := h.service.GetBundle(r.Context(), bundleID)
	if err != nil {
		respondServiceError(h.log, w, err, "get bundle")
		return
	}

	utils.ResponseSuccess(w, "success", bundle)
}

// ==================== ADMIN METHODS ====================

// CreateBundle handles POST /api/admin/bundles (admin only)
func (h *BundleHandler) CreateBundle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bundle, err := h.service.CreateBundle(r.Context(), &req)
	if err != nil {
		respondServiceError(h.log, w, err, "create bundle")
		return
	}

	utils.ResponseCreated(w, "success", bundle)
}

// UpdateBundle handles PUT /api/admin/bundles/{id} (admin only)
func (h *BundleHandler) UpdateBundle(w http.ResponseWriter, r *http.Request) {
	bundleID := chi.URLParam(r, "id")
	if bundleID == "" {
		utils.ResponseBadRequest(w, "Bundle ID is required", nil)
		return
	}

	var req request.UpdateBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	bundle, err := h.service.UpdateBundle(r.Context(), bundleID, &req)
	if err != nil {
		respondServiceError(h.log, w, err, "update bundle")
		return
	}

	utils.ResponseSuccess(w, "success", bundle)
}

// DeactivateBundle handles DELETE /api/admin/bundles/{id} (admin only)
func (h *BundleHandler) DeactivateBundle(w http.ResponseWriter, r *http.Request) {
	bundleID := chi.URLParam(r, "id")
	if bundleID == "" {
		utils.ResponseBadRequest(w, "Bundle ID is required", nil)
		return
	}

	if err := h.service.DeactivateBundle(r.Context(), bundleID); err != nil {
		respondServiceError(h.log, w, err, "deactivate bundle")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
