package adaptor

import (
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailability handles GET /api/availability?subject_id=...&date=... (public)
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	subjectID := query.Get("subject_id")
	date := query.Get("date")

	if subjectID == "" || date == "" {
		utils.ResponseBadRequest(w, "subject_id and date query parameters are required", nil)
		return
	}

	availability, err := h.service.Resolve(r.Context(), subjectID, date)
	if err != nil {
		respondServiceError(h.log, w, err, "resolve availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}
