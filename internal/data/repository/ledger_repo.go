package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// LedgerRepository is the authoritative record of holds and bookings.
// Reserve and Confirm run as serializable transactions so that two
// overlapping reservations on the same resource cannot both commit.
type LedgerRepository interface {
	IsFree(ctx context.Context, resourceID uuid.UUID, start, end time.Time, asOf time.Time) (bool, error)
	Reserve(ctx context.Context, hold *entity.Hold, resources []entity.HoldResource) error
	Confirm(ctx context.Context, holdID uuid.UUID, orderID string) (*entity.Booking, error)
	Release(ctx context.Context, holdID uuid.UUID) error
	SweepExpired(ctx context.Context, asOf time.Time) ([]entity.HoldResource, error)
}

type ledgerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLedgerRepository(db database.PgxIface, log *zap.Logger) LedgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "ledger")),
	}
}

// serializationRetries bounds retry of transactions aborted with
// SQLSTATE 40001 under serializable isolation.
const serializationRetries = 3

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// overlapQuery reports whether any confirmed/completed booking or any
// pending, unexpired hold occupies part of [start, end) on the resource.
// Holds past expires_at are ignored: expiry is evaluated lazily here and
// reconciled by the sweeper.
const overlapQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM booking_resources br
		JOIN bookings b ON b.id = br.booking_id
		WHERE br.resource_id = $1
		  AND b.status IN ('confirmed', 'completed')
		  AND br.start_time < $3
		  AND br.end_time > $2
	) OR EXISTS (
		SELECT 1
		FROM hold_resources hr
		JOIN holds h ON h.id = hr.hold_id
		WHERE hr.resource_id = $1
		  AND h.state = 'pending'
		  AND h.expires_at > $4
		  AND hr.start_time < $3
		  AND hr.end_time > $2
	)
`

func (r *ledgerRepository) IsFree(ctx context.Context, resourceID uuid.UUID, start, end time.Time, asOf time.Time) (bool, error) {
	var occupied bool
	err := r.db.QueryRow(ctx, overlapQuery, resourceID, start, end, asOf).Scan(&occupied)
	if err != nil {
		r.log.Error("Failed to run overlap query",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
		)
		return false, fmt.Errorf("overlap query for %s: %w", resourceID.String(), err)
	}

	return !occupied, nil
}

// Reserve inserts the hold and all of its resource windows after
// re-validating every window inside one serializable transaction. The
// reservation is all-or-nothing across the bundle's resources.
func (r *ledgerRepository) Reserve(ctx context.Context, hold *entity.Hold, resources []entity.HoldResource) error {
	var err error
	for attempt := 0; attempt < serializationRetries; attempt++ {
		err = r.reserveOnce(ctx, hold, resources)
		if err == nil || !isSerializationFailure(err) {
			break
		}
		r.log.Warn("Reserve serialization conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.String("hold_id", hold.ID.String()),
		)
	}

	if err != nil && isSerializationFailure(err) {
		// A competing reservation kept winning; report the slot as taken.
		return fmt.Errorf("reserve hold %s: %w", hold.ID.String(), ErrSlotUnavailable)
	}
	return err
}

func (r *ledgerRepository) reserveOnce(ctx context.Context, hold *entity.Hold, resources []entity.HoldResource) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin reserve: %w", err)
	}
	defer tx.Rollback(ctx)

	// Re-validate every window; availability reads may have been stale.
	for _, res := range resources {
		var occupied bool
		err := tx.QueryRow(ctx, overlapQuery, res.ResourceID, res.StartTime, res.EndTime, hold.CreatedAt).Scan(&occupied)
		if err != nil {
			return fmt.Errorf("revalidate window for %s: %w", res.ResourceID.String(), err)
		}
		if occupied {
			r.log.Info("Reservation rejected, window taken",
				zap.String("hold_id", hold.ID.String()),
				zap.String("resource_id", res.ResourceID.String()),
				zap.Time("start", res.StartTime),
			)
			return fmt.Errorf("window taken on %s: %w", res.ResourceID.String(), ErrSlotUnavailable)
		}
	}

	insertHold := `
		INSERT INTO holds (id, idempotency_key, subject_type, subject_id, start_time, duration_minutes, price, state, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, insertHold,
		hold.ID,
		hold.IdempotencyKey,
		hold.SubjectType,
		hold.SubjectID,
		hold.StartTime,
		hold.DurationMinutes,
		hold.Price,
		hold.State,
		hold.ExpiresAt,
		hold.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert hold: %w", ErrDuplicateIdempotencyKey)
		}
		return fmt.Errorf("insert hold %s: %w", hold.ID.String(), err)
	}

	insertResource := `
		INSERT INTO hold_resources (hold_id, service_id, role, resource_id, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, res := range resources {
		_, err := tx.Exec(ctx, insertResource,
			hold.ID,
			res.ServiceID,
			res.Role,
			res.ResourceID,
			res.StartTime,
			res.EndTime,
		)
		if err != nil {
			return fmt.Errorf("insert hold resource %s: %w", res.ResourceID.String(), err)
		}
	}

	return tx.Commit(ctx)
}

// Confirm converts a pending hold into a booking. The guarded state
// transition makes confirm, release and sweep mutually exclusive: only
// one of them flips the row out of pending.
func (r *ledgerRepository) Confirm(ctx context.Context, holdID uuid.UUID, orderID string) (*entity.Booking, error) {
	var booking *entity.Booking
	var err error
	for attempt := 0; attempt < serializationRetries; attempt++ {
		booking, err = r.confirmOnce(ctx, holdID, orderID)
		if err == nil || !isSerializationFailure(err) {
			break
		}
		r.log.Warn("Confirm serialization conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.String("hold_id", holdID.String()),
		)
	}
	return booking, err
}

func (r *ledgerRepository) confirmOnce(ctx context.Context, holdID uuid.UUID, orderID string) (*entity.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("begin confirm: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`SELECT %s FROM holds WHERE id = $1 FOR UPDATE`, holdColumns)
	hold, err := scanHold(tx.QueryRow(ctx, query, holdID))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("confirm hold %s: %w", holdID.String(), ErrHoldNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load hold %s: %w", holdID.String(), err)
	}

	now := time.Now()
	switch hold.State {
	case entity.HoldStatePending:
		if hold.Expired(now) {
			return nil, fmt.Errorf("confirm hold %s: %w", holdID.String(), ErrHoldExpired)
		}
	case entity.HoldStateExpired:
		return nil, fmt.Errorf("confirm hold %s: %w", holdID.String(), ErrHoldExpired)
	default:
		// Already confirmed or released; the hold is consumed.
		return nil, fmt.Errorf("confirm hold %s in state %s: %w", holdID.String(), hold.State, ErrHoldNotFound)
	}

	result, err := tx.Exec(ctx, `UPDATE holds SET state = 'confirmed' WHERE id = $1 AND state = 'pending'`, holdID)
	if err != nil {
		return nil, fmt.Errorf("flip hold %s to confirmed: %w", holdID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("confirm hold %s lost race: %w", holdID.String(), ErrHoldNotFound)
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:         orderID,
		HoldID:          hold.ID,
		SubjectType:     hold.SubjectType,
		SubjectID:       hold.SubjectID,
		StartTime:       hold.StartTime,
		EndTime:         hold.StartTime.Add(time.Duration(hold.DurationMinutes) * time.Minute),
		DurationMinutes: hold.DurationMinutes,
		Price:           hold.Price,
		Status:          entity.BookingStatusConfirmed,
	}

	insertBooking := `
		INSERT INTO bookings (id, order_id, hold_id, subject_type, subject_id, start_time, end_time, duration_minutes, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, insertBooking,
		booking.ID,
		booking.OrderID,
		booking.HoldID,
		booking.SubjectType,
		booking.SubjectID,
		booking.StartTime,
		booking.EndTime,
		booking.DurationMinutes,
		booking.Price,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking for hold %s: %w", holdID.String(), err)
	}

	// Copy the reserved windows onto the booking
	copyResources := `
		INSERT INTO booking_resources (booking_id, service_id, role, resource_id, start_time, end_time)
		SELECT $1, service_id, role, resource_id, start_time, end_time
		FROM hold_resources
		WHERE hold_id = $2
	`
	if _, err := tx.Exec(ctx, copyResources, booking.ID, holdID); err != nil {
		return nil, fmt.Errorf("copy hold resources for %s: %w", holdID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return booking, nil
}

// Release flips a pending hold to released. Releasing an already
// released or expired hold is a no-op.
func (r *ledgerRepository) Release(ctx context.Context, holdID uuid.UUID) error {
	query := fmt.Sprintf(`SELECT %s FROM holds WHERE id = $1`, holdColumns)
	_, err := scanHold(r.db.QueryRow(ctx, query, holdID))
	if err == pgx.ErrNoRows {
		return fmt.Errorf("release hold %s: %w", holdID.String(), ErrHoldNotFound)
	}
	if err != nil {
		return fmt.Errorf("load hold %s: %w", holdID.String(), err)
	}

	result, err := r.db.Exec(ctx, `UPDATE holds SET state = 'released' WHERE id = $1 AND state = 'pending'`, holdID)
	if err != nil {
		r.log.Error("Failed to release hold",
			zap.Error(err),
			zap.String("hold_id", holdID.String()),
		)
		return fmt.Errorf("release hold %s: %w", holdID.String(), err)
	}

	if result.RowsAffected() > 0 {
		r.log.Info("Hold released", zap.String("hold_id", holdID.String()))
	}

	return nil
}

// SweepExpired flips pending holds past their TTL to expired and returns
// the windows they were occupying, so callers can invalidate availability
// caches for the affected resources.
func (r *ledgerRepository) SweepExpired(ctx context.Context, asOf time.Time) ([]entity.HoldResource, error) {
	query := `
		WITH expired AS (
			UPDATE holds
			SET state = 'expired'
			WHERE state = 'pending' AND expires_at <= $1
			RETURNING id
		)
		SELECT hr.hold_id, hr.service_id, hr.role, hr.resource_id, hr.start_time, hr.end_time
		FROM hold_resources hr
		JOIN expired e ON e.id = hr.hold_id
	`

	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		r.log.Error("Failed to sweep expired holds", zap.Error(err))
		return nil, fmt.Errorf("sweep expired holds: %w", err)
	}
	defer rows.Close()

	var freed []entity.HoldResource
	for rows.Next() {
		var hr entity.HoldResource
		err := rows.Scan(&hr.HoldID, &hr.ServiceID, &hr.Role, &hr.ResourceID, &hr.StartTime, &hr.EndTime)
		if err != nil {
			return nil, fmt.Errorf("scan swept hold row: %w", err)
		}
		freed = append(freed, hr)
	}

	return freed, nil
}
