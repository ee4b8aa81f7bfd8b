package adaptor

import (
	"salon-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog      *CatalogHandler
	Bundle       *BundleHandler
	Availability *AvailabilityHandler
	Hold         *HoldHandler
	Booking      *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog:      NewCatalogHandler(service.Catalog, log),
		Bundle:       NewBundleHandler(service.Bundle, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Hold:         NewHoldHandler(service.Hold, log),
		Booking:      NewBookingHandler(service.Booking, log),
	}
}
