package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByResourceAndDate(ctx context.Context, resourceID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Booking, error)
	FindResources(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingResource, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, reason *string) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, hold_id, subject_type, subject_id, start_time, end_time, duration_minutes, price, status, cancel_reason, created_at, updated_at`

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.HoldID,
		&booking.SubjectType,
		&booking.SubjectID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Price,
		&booking.Status,
		&booking.CancelReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByResourceAndDate(ctx context.Context, resourceID uuid.UUID, dayStart, dayEnd time.Time) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM bookings b
		JOIN booking_resources br ON br.booking_id = b.id
		WHERE br.resource_id = $1
		  AND b.start_time >= $2
		  AND b.start_time < $3
		ORDER BY b.start_time
	`, prefixColumns("b", bookingColumns))

	rows, err := r.db.Query(ctx, query, resourceID, dayStart, dayEnd)
	if err != nil {
		r.log.Error("Failed to find bookings by resource and date",
			zap.Error(err),
			zap.String("resource_id", resourceID.String()),
		)
		return nil, fmt.Errorf("find bookings for resource %s: %w", resourceID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindResources(ctx context.Context, bookingID uuid.UUID) ([]entity.BookingResource, error) {
	query := `
		SELECT booking_id, service_id, role, resource_id, start_time, end_time
		FROM booking_resources
		WHERE booking_id = $1
		ORDER BY start_time, resource_id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find booking resources",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find booking resources %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var resources []entity.BookingResource
	for rows.Next() {
		var br entity.BookingResource
		err := rows.Scan(&br.BookingID, &br.ServiceID, &br.Role, &br.ResourceID, &br.StartTime, &br.EndTime)
		if err != nil {
			return nil, fmt.Errorf("scan booking resource row: %w", err)
		}
		resources = append(resources, br)
	}

	return resources, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, reason *string) error {
	query := `UPDATE bookings SET status = $2, cancel_reason = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status, reason)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s: %w", bookingID.String(), ErrBookingNotFound)
	}

	return nil
}
