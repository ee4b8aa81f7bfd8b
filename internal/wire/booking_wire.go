package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/bookings?resource_id=...&date=... - Day schedule for a resource
	r.Get("/api/bookings", bookingHandler.GetBookingsByResource)

	// GET /api/bookings/{id} - Booking details
	r.Get("/api/bookings/{id}", bookingHandler.GetBooking)

	// PATCH /api/bookings/{id} - Reschedule onto a new hold
	r.Patch("/api/bookings/{id}", bookingHandler.RescheduleBooking)

	// DELETE /api/bookings/{id} - Cancel with a reason
	r.Delete("/api/bookings/{id}", bookingHandler.CancelBooking)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.AdminKey(config.Admin.APIKey, log))

		// PUT /api/admin/bookings/{id}/status - Mark completed or no_show
		r.Put("/{id}/status", bookingHandler.UpdateBookingStatus)
	})
}
