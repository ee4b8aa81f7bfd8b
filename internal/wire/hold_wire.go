package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireHold(r chi.Router, holdHandler *adaptor.HoldHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/holds - Reserve a slot (idempotent per key)
	r.Post("/api/holds", holdHandler.CreateHold)

	// GET /api/holds/{id} - Hold details
	r.Get("/api/holds/{id}", holdHandler.GetHold)

	// POST /api/holds/{id}/confirm - Convert hold into a booking
	r.Post("/api/holds/{id}/confirm", holdHandler.ConfirmHold)

	// DELETE /api/holds/{id} - Release a hold early
	r.Delete("/api/holds/{id}", holdHandler.ReleaseHold)
}
