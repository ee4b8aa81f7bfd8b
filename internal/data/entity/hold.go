package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubjectType string

const (
	SubjectTypeService SubjectType = "service"
	SubjectTypeBundle  SubjectType = "bundle"
)

type HoldState string

const (
	HoldStatePending   HoldState = "pending"
	HoldStateConfirmed HoldState = "confirmed"
	HoldStateExpired   HoldState = "expired"
	HoldStateReleased  HoldState = "released"
)

// Hold is a short-lived reservation of every resource window a service or
// bundle needs. It blocks overlapping reservations until it is confirmed,
// released, or passes ExpiresAt. Price and duration are snapshots taken
// from the catalog at creation time.
type Hold struct {
	BaseSimple
	IdempotencyKey  string      `db:"idempotency_key"`
	SubjectType     SubjectType `db:"subject_type"`
	SubjectID       uuid.UUID   `db:"subject_id"`
	StartTime       time.Time   `db:"start_time"`
	DurationMinutes int         `db:"duration_minutes"`
	Price           int64       `db:"price"`
	State           HoldState   `db:"state"`
	ExpiresAt       time.Time   `db:"expires_at"`
}

// Expired reports whether the hold is past its TTL at the given instant.
func (h *Hold) Expired(asOf time.Time) bool {
	return asOf.After(h.ExpiresAt)
}

// HoldResource is one reserved resource window of a hold. Serial bundles
// produce one window per member service, offset by the cumulative duration
// of the prior members; parallel bundles share the hold's window.
type HoldResource struct {
	HoldID     uuid.UUID    `db:"hold_id"`
	ServiceID  uuid.UUID    `db:"service_id"`
	Role       ResourceType `db:"role"`
	ResourceID uuid.UUID    `db:"resource_id"`
	StartTime  time.Time    `db:"start_time"`
	EndTime    time.Time    `db:"end_time"`
}
