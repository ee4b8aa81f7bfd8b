package repository

import (
	"salon-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Service  ServiceRepository
	Bundle   BundleRepository
	Resource ResourceRepository
	Hold     HoldRepository
	Booking  BookingRepository
	Ledger   LedgerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Service:  NewServiceRepository(db, log),
		Bundle:   NewBundleRepository(db, log),
		Resource: NewResourceRepository(db, log),
		Hold:     NewHoldRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Ledger:   NewLedgerRepository(db, log),
	}
}
