package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, availabilityHandler *adaptor.AvailabilityHandler) {
	// GET /api/availability?subject_id=...&date=... - Feasible start times (public)
	r.Get("/api/availability", availabilityHandler.GetAvailability)
}
