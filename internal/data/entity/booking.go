package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Booking is the durable outcome of a confirmed hold. Price, duration and
// the resource assignment are frozen copies; later catalog edits never
// change a historical booking.
type Booking struct {
	Base
	OrderID         string        `db:"order_id"`
	HoldID          uuid.UUID     `db:"hold_id"`
	SubjectType     SubjectType   `db:"subject_type"`
	SubjectID       uuid.UUID     `db:"subject_id"`
	StartTime       time.Time     `db:"start_time"`
	EndTime         time.Time     `db:"end_time"`
	DurationMinutes int           `db:"duration_minutes"`
	Price           int64         `db:"price"`
	Status          BookingStatus `db:"status"`
	CancelReason    *string       `db:"cancel_reason"`
}

// BookingResource mirrors the hold's resource windows once confirmed.
type BookingResource struct {
	BookingID  uuid.UUID    `db:"booking_id"`
	ServiceID  uuid.UUID    `db:"service_id"`
	Role       ResourceType `db:"role"`
	ResourceID uuid.UUID    `db:"resource_id"`
	StartTime  time.Time    `db:"start_time"`
	EndTime    time.Time    `db:"end_time"`
}
