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

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetAllServices handles GET /api/services (public)
func (h *CatalogHandler) GetAllServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.GetAllServices(r.Context())
	if err != nil {
		respondServiceError(h.log, w, err, "get all services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// GetService handles GET /api/services/{id} (public)
func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	service, err := h.service.GetService(r.Context(), serviceID)
	if err != nil {
		respondServiceError(h.log, w, err, "get service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// GetAllResources handles GET /api/resources (public)
func (h *CatalogHandler) GetAllResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.service.GetAllResources(r.Context())
	if err != nil {
		respondServiceError(h.log, w, err, "get all resources")
		return
	}

	utils.ResponseSuccess(w, "success", resources)
}

// GetResource handles GET /api/resources/{id} (public)
func (h *CatalogHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	resource, err := h.service.GetResource(r.Context(), resourceID)
	if err != nil {
		respondServiceError(h.log, w, err, "get resource")
		return
	}

	utils.ResponseSuccess(w, "success", resource)
}

// ==================== ADMIN METHODS ====================

// CreateService handles POST /api/admin/services (admin only)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		respondServiceError(h.log, w, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/admin/services/{id} (admin only)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.UpdateService(r.Context(), serviceID, &req)
	if err != nil {
		respondServiceError(h.log, w, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// DeactivateService handles DELETE /api/admin/services/{id} (admin only)
func (h *CatalogHandler) DeactivateService(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	if err := h.service.DeactivateService(r.Context(), serviceID); err != nil {
		respondServiceError(h.log, w, err, "deactivate service")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// CreateResource handles POST /api/admin/resources (admin only)
func (h *CatalogHandler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var req request.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resource, err := h.service.CreateResource(r.Context(), &req)
	if err != nil {
		respondServiceError(h.log, w, err, "create resource")
		return
	}

	utils.ResponseCreated(w, "success", resource)
}

// UpdateResource handles PUT /api/admin/resources/{id} (admin only)
func (h *CatalogHandler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	var req request.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resource, err := h.service.UpdateResource(r.Context(), resourceID, &req)
	if err != nil {
		respondServiceError(h.log, w, err, "update resource")
		return
	}

	utils.ResponseSuccess(w, "success", resource)
}

// DeleteResource handles DELETE /api/admin/resources/{id} (admin only)
func (h *CatalogHandler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	resourceID := chi.URLParam(r, "id")
	if resourceID == "" {
		utils.ResponseBadRequest(w, "Resource ID is required", nil)
		return
	}

	if err := h.service.DeleteResource(r.Context(), resourceID); err != nil {
		respondServiceError(h.log, w, err, "delete resource")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
