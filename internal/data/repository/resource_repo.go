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

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	FindAll(ctx context.Context) ([]*entity.Resource, error)
	FindByType(ctx context.Context, resourceType entity.ResourceType) ([]*entity.Resource, error)
	FindHumansWithSkills(ctx context.Context, skills []string) ([]*entity.Resource, error)
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewResourceRepository(db database.PgxIface, log *zap.Logger) ResourceRepository {
	return &resourceRepository{
		db:  db,
		log: log.With(zap.String("repository", "resource")),
	}
}

func (r *resourceRepository) Create(ctx context.Context, resource *entity.Resource) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create resource: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO resources (id, name, type, skills, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = tx.Exec(ctx, query,
		resource.ID,
		resource.Name,
		resource.Type,
		resource.Skills,
		resource.CreatedAt,
		resource.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create resource",
			zap.Error(err),
			zap.String("name", resource.Name),
		)
		return fmt.Errorf("create resource %s: %w", resource.Name, err)
	}

	if err := r.insertHours(ctx, tx, resource.ID, resource.Hours); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *resourceRepository) insertHours(ctx context.Context, tx pgx.Tx, resourceID uuid.UUID, hours []entity.WorkingHours) error {
	query := `
		INSERT INTO resource_hours (resource_id, weekday, open_minutes, close_minutes)
		VALUES ($1, $2, $3, $4)
	`

	for _, h := range hours {
		if _, err := tx.Exec(ctx, query, resourceID, h.Weekday, h.OpenMinutes, h.CloseMinutes); err != nil {
			r.log.Error("Failed to insert working hours",
				zap.Error(err),
				zap.String("resource_id", resourceID.String()),
				zap.Int("weekday", h.Weekday),
			)
			return fmt.Errorf("insert working hours for %s: %w", resourceID.String(), err)
		}
	}
	return nil
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	query := `
		SELECT id, name, type, skills, created_at, updated_at
		FROM resources
		WHERE id = $1
	`

	var resource entity.Resource
	err := r.db.QueryRow(ctx, query, id).Scan(
		&resource.ID,
		&resource.Name,
		&resource.Type,
		&resource.Skills,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find resource by ID",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return nil, fmt.Errorf("find resource by ID %s: %w", id.String(), err)
	}

	if err := r.loadHours(ctx, &resource); err != nil {
		return nil, err
	}

	return &resource, nil
}

func (r *resourceRepository) FindAll(ctx context.Context) ([]*entity.Resource, error) {
	return r.findWhere(ctx, `TRUE`, nil)
}

func (r *resourceRepository) FindByType(ctx context.Context, resourceType entity.ResourceType) ([]*entity.Resource, error) {
	return r.findWhere(ctx, `type = $1`, []any{resourceType})
}

// FindHumansWithSkills returns human resources whose skill list covers
// every entry of skills (text[] containment).
func (r *resourceRepository) FindHumansWithSkills(ctx context.Context, skills []string) ([]*entity.Resource, error) {
	return r.findWhere(ctx, `type = 'human' AND skills @> $1`, []any{skills})
}

func (r *resourceRepository) findWhere(ctx context.Context, where string, args []any) ([]*entity.Resource, error) {
	query := fmt.Sprintf(`
		SELECT id, name, type, skills, created_at, updated_at
		FROM resources
		WHERE %s
		ORDER BY name
	`, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query resources", zap.Error(err), zap.String("where", where))
		return nil, fmt.Errorf("query resources: %w", err)
	}
	defer rows.Close()

	var resources []*entity.Resource
	for rows.Next() {
		var resource entity.Resource
		err := rows.Scan(
			&resource.ID,
			&resource.Name,
			&resource.Type,
			&resource.Skills,
			&resource.CreatedAt,
			&resource.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan resource row", zap.Error(err))
			return nil, fmt.Errorf("scan resource row: %w", err)
		}
		resources = append(resources, &resource)
	}
	rows.Close()

	for _, resource := range resources {
		if err := r.loadHours(ctx, resource); err != nil {
			return nil, err
		}
	}

	return resources, nil
}

func (r *resourceRepository) loadHours(ctx context.Context, resource *entity.Resource) error {
	query := `
		SELECT resource_id, weekday, open_minutes, close_minutes
		FROM resource_hours
		WHERE resource_id = $1
		ORDER BY weekday
	`

	rows, err := r.db.Query(ctx, query, resource.ID)
	if err != nil {
		r.log.Error("Failed to load working hours",
			zap.Error(err),
			zap.String("resource_id", resource.ID.String()),
		)
		return fmt.Errorf("load working hours for %s: %w", resource.ID.String(), err)
	}
	defer rows.Close()

	var hours []entity.WorkingHours
	for rows.Next() {
		var h entity.WorkingHours
		if err := rows.Scan(&h.ResourceID, &h.Weekday, &h.OpenMinutes, &h.CloseMinutes); err != nil {
			return fmt.Errorf("scan working hours row: %w", err)
		}
		hours = append(hours, h)
	}
	resource.Hours = hours

	return nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *entity.Resource) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update resource: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE resources
		SET name = $2, type = $3, skills = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		resource.ID,
		resource.Name,
		resource.Type,
		resource.Skills,
		resource.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update resource",
			zap.Error(err),
			zap.String("resource_id", resource.ID.String()),
		)
		return fmt.Errorf("update resource %s: %w", resource.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", resource.ID.String())
	}

	// Replace the weekly template
	if _, err := tx.Exec(ctx, `DELETE FROM resource_hours WHERE resource_id = $1`, resource.ID); err != nil {
		return fmt.Errorf("clear working hours for %s: %w", resource.ID.String(), err)
	}
	if err := r.insertHours(ctx, tx, resource.ID, resource.Hours); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete resource",
			zap.Error(err),
			zap.String("resource_id", id.String()),
		)
		return fmt.Errorf("delete resource %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %s not found", id.String())
	}

	r.log.Info("Resource deleted", zap.String("resource_id", id.String()))
	return nil
}
