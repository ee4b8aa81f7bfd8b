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

type BundleRepository interface {
	Create(ctx context.Context, bundle *entity.Bundle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bundle, error)
	FindAllActive(ctx context.Context) ([]*entity.Bundle, error)
	Update(ctx context.Context, bundle *entity.Bundle) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type bundleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBundleRepository(db database.PgxIface, log *zap.Logger) BundleRepository {
	return &bundleRepository{
		db:  db,
		log: log.With(zap.String("repository", "bundle")),
	}
}

func (r *bundleRepository) Create(ctx context.Context, bundle *entity.Bundle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create bundle: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO bundles (id, name, concurrency, human_policy, price_mode, discount_percent, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		bundle.ID,
		bundle.Name,
		bundle.Concurrency,
		bundle.HumanPolicy,
		bundle.PriceMode,
		bundle.DiscountPercent,
		bundle.Active,
		bundle.CreatedAt,
		bundle.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create bundle",
			zap.Error(err),
			zap.String("name", bundle.Name),
		)
		return fmt.Errorf("create bundle %s: %w", bundle.Name, err)
	}

	if err := r.insertMembers(ctx, tx, bundle.ID, bundle.ServiceIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *bundleRepository) insertMembers(ctx context.Context, tx pgx.Tx, bundleID uuid.UUID, serviceIDs []uuid.UUID) error {
	query := `INSERT INTO bundle_services (bundle_id, service_id, position) VALUES ($1, $2, $3)`

	for i, serviceID := range serviceIDs {
		if _, err := tx.Exec(ctx, query, bundleID, serviceID, i); err != nil {
			r.log.Error("Failed to insert bundle member",
				zap.Error(err),
				zap.String("bundle_id", bundleID.String()),
				zap.String("service_id", serviceID.String()),
			)
			return fmt.Errorf("insert bundle member %s: %w", serviceID.String(), err)
		}
	}
	return nil
}

func (r *bundleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bundle, error) {
	query := `
		SELECT id, name, concurrency, human_policy, price_mode, discount_percent, active, created_at, updated_at
		FROM bundles
		WHERE id = $1
	`

	var bundle entity.Bundle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bundle.ID,
		&bundle.Name,
		&bundle.Concurrency,
		&bundle.HumanPolicy,
		&bundle.PriceMode,
		&bundle.DiscountPercent,
		&bundle.Active,
		&bundle.CreatedAt,
		&bundle.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bundle by ID",
			zap.Error(err),
			zap.String("bundle_id", id.String()),
		)
		return nil, fmt.Errorf("find bundle by ID %s: %w", id.String(), err)
	}

	serviceIDs, err := r.findMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	bundle.ServiceIDs = serviceIDs

	return &bundle, nil
}

func (r *bundleRepository) findMemberIDs(ctx context.Context, bundleID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT service_id
		FROM bundle_services
		WHERE bundle_id = $1
		ORDER BY position
	`

	rows, err := r.db.Query(ctx, query, bundleID)
	if err != nil {
		r.log.Error("Failed to find bundle members",
			zap.Error(err),
			zap.String("bundle_id", bundleID.String()),
		)
		return nil, fmt.Errorf("find bundle members %s: %w", bundleID.String(), err)
	}
	defer rows.Close()

	var serviceIDs []uuid.UUID
	for rows.Next() {
		var serviceID uuid.UUID
		if err := rows.Scan(&serviceID); err != nil {
			return nil, fmt.Errorf("scan bundle member row: %w", err)
		}
		serviceIDs = append(serviceIDs, serviceID)
	}

	return serviceIDs, nil
}

func (r *bundleRepository) FindAllActive(ctx context.Context) ([]*entity.Bundle, error) {
	query := `
		SELECT id, name, concurrency, human_policy, price_mode, discount_percent, active, created_at, updated_at
		FROM bundles
		WHERE active = TRUE
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find active bundles", zap.Error(err))
		return nil, fmt.Errorf("find active bundles: %w", err)
	}
	defer rows.Close()

	var bundles []*entity.Bundle
	for rows.Next() {
		var bundle entity.Bundle
		err := rows.Scan(
			&bundle.ID,
			&bundle.Name,
			&bundle.Concurrency,
			&bundle.HumanPolicy,
			&bundle.PriceMode,
			&bundle.DiscountPercent,
			&bundle.Active,
			&bundle.CreatedAt,
			&bundle.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan bundle row", zap.Error(err))
			return nil, fmt.Errorf("scan bundle row: %w", err)
		}
		bundles = append(bundles, &bundle)
	}
	rows.Close()

	for _, bundle := range bundles {
		serviceIDs, err := r.findMemberIDs(ctx, bundle.ID)
		if err != nil {
			return nil, err
		}
		bundle.ServiceIDs = serviceIDs
	}

	return bundles, nil
}

func (r *bundleRepository) Update(ctx context.Context, bundle *entity.Bundle) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update bundle: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE bundles
		SET name = $2, concurrency = $3, human_policy = $4, price_mode = $5,
		    discount_percent = $6, active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		bundle.ID,
		bundle.Name,
		bundle.Concurrency,
		bundle.HumanPolicy,
		bundle.PriceMode,
		bundle.DiscountPercent,
		bundle.Active,
		bundle.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update bundle",
			zap.Error(err),
			zap.String("bundle_id", bundle.ID.String()),
		)
		return fmt.Errorf("update bundle %s: %w", bundle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bundle %s not found", bundle.ID.String())
	}

	// Replace member list
	if _, err := tx.Exec(ctx, `DELETE FROM bundle_services WHERE bundle_id = $1`, bundle.ID); err != nil {
		return fmt.Errorf("clear bundle members %s: %w", bundle.ID.String(), err)
	}
	if err := r.insertMembers(ctx, tx, bundle.ID, bundle.ServiceIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *bundleRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE bundles SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set bundle active flag",
			zap.Error(err),
			zap.String("bundle_id", id.String()),
			zap.Bool("active", active),
		)
		return fmt.Errorf("set bundle %s active=%t: %w", id.String(), active, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bundle %s not found", id.String())
	}

	return nil
}
