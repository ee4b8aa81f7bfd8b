package usecase

import (
	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog      CatalogService
	Bundle       BundleService
	Availability AvailabilityService
	Hold         HoldService
	Booking      BookingService
}

func NewService(repo *repository.Repository, availCache *cache.AvailabilityCache, config *utils.Config, log *zap.Logger) *Service {
	bundles := NewBundleService(repo, log)
	plan := newPlanner(repo, config.Scheduling.SlotGranularityMinutes)
	notifier := NewLogNotifier(log)

	return &Service{
		Catalog:      NewCatalogService(repo, log),
		Bundle:       bundles,
		Availability: NewAvailabilityService(repo, bundles, plan, availCache, log),
		Hold:         NewHoldService(repo, bundles, plan, availCache, notifier, config.Scheduling.HoldTTLSeconds, log),
		Booking:      NewBookingService(repo, availCache, notifier, log),
	}
}
