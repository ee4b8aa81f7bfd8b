package repository

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HoldRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*entity.Hold, error)
	FindResources(ctx context.Context, holdID uuid.UUID) ([]entity.HoldResource, error)
}

type holdRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHoldRepository(db database.PgxIface, log *zap.Logger) HoldRepository {
	return &holdRepository{
		db:  db,
		log: log.With(zap.String("repository", "hold")),
	}
}

const holdColumns = `id, idempotency_key, subject_type, subject_id, start_time, duration_minutes, price, state, expires_at, created_at`

func scanHold(row pgx.Row) (*entity.Hold, error) {
	var hold entity.Hold
	err := row.Scan(
		&hold.ID,
		&hold.IdempotencyKey,
		&hold.SubjectType,
		&hold.SubjectID,
		&hold.StartTime,
		&hold.DurationMinutes,
		&hold.Price,
		&hold.State,
		&hold.ExpiresAt,
		&hold.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *holdRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hold, error) {
	query := fmt.Sprintf(`SELECT %s FROM holds WHERE id = $1`, holdColumns)

	hold, err := scanHold(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hold by ID",
			zap.Error(err),
			zap.String("hold_id", id.String()),
		)
		return nil, fmt.Errorf("find hold by ID %s: %w", id.String(), err)
	}

	return hold, nil
}

func (r *holdRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Hold, error) {
	query := fmt.Sprintf(`SELECT %s FROM holds WHERE idempotency_key = $1`, holdColumns)

	hold, err := scanHold(r.db.QueryRow(ctx, query, key))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hold by idempotency key",
			zap.Error(err),
			zap.String("idempotency_key", key),
		)
		return nil, fmt.Errorf("find hold by idempotency key: %w", err)
	}

	return hold, nil
}

func (r *holdRepository) FindResources(ctx context.Context, holdID uuid.UUID) ([]entity.HoldResource, error) {
	query := `
		SELECT hold_id, service_id, role, resource_id, start_time, end_time
		FROM hold_resources
		WHERE hold_id = $1
		ORDER BY start_time, resource_id
	`

	rows, err := r.db.Query(ctx, query, holdID)
	if err != nil {
		r.log.Error("Failed to find hold resources",
			zap.Error(err),
			zap.String("hold_id", holdID.String()),
		)
		return nil, fmt.Errorf("find hold resources %s: %w", holdID.String(), err)
	}
	defer rows.Close()

	var resources []entity.HoldResource
	for rows.Next() {
		var hr entity.HoldResource
		err := rows.Scan(&hr.HoldID, &hr.ServiceID, &hr.Role, &hr.ResourceID, &hr.StartTime, &hr.EndTime)
		if err != nil {
			return nil, fmt.Errorf("scan hold resource row: %w", err)
		}
		resources = append(resources, hr)
	}

	return resources, nil
}
