package repository

import "errors"

// Conflict errors surfaced by the ledger. Callers treat these as
// retryable: re-query availability and pick a new slot.
var (
	ErrSlotUnavailable = errors.New("slot unavailable")
	ErrHoldNotFound    = errors.New("hold not found")
	ErrHoldExpired     = errors.New("hold expired")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrDuplicateIdempotencyKey is returned when two reservations race on
	// the same key; the caller replays the stored hold instead.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
)
