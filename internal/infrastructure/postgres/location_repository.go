package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo — реализация порта LocationRepository поверх PostgreSQL.
type LocationRepo struct {
	db DB
}

// NewLocationRepository конструирует адаптер персистентности локаций.
func NewLocationRepository(db DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// Create сохраняет новую локацию.
func (r *LocationRepo) Create(ctx context.Context, location *entity.Location) error {
	query := `
		INSERT INTO locations (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		location.Name, location.CreatedAt, location.UpdatedAt,
	).Scan(&location.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID возвращает локацию по id независимо от отметки удаления.
func (r *LocationRepo) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM locations WHERE id = $1`
	var l entity.Location
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// GetByName ищет активную локацию по имени.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*entity.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM locations WHERE name = $1 AND deleted_at IS NULL`
	var l entity.Location
	err := r.db.QueryRow(ctx, query, name).Scan(
		&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location by name: %w", err)
	}
	return &l, nil
}

// Update обновляет локацию.
func (r *LocationRepo) Update(ctx context.Context, location *entity.Location) error {
	query := `UPDATE locations SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, location.ID, location.Name, location.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// ListActive возвращает активные локации по имени.
func (r *LocationRepo) ListActive(ctx context.Context) ([]*entity.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM locations WHERE deleted_at IS NULL ORDER BY name`
	return r.list(ctx, query)
}

// ListDeleted возвращает удалённые локации, сначала недавние.
func (r *LocationRepo) ListDeleted(ctx context.Context) ([]*entity.Location, error) {
	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM locations WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	return r.list(ctx, query)
}

func (r *LocationRepo) list(ctx context.Context, query string) ([]*entity.Location, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.UpdatedAt, &l.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SoftDelete помечает локацию удалённой.
func (r *LocationRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE locations SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete location: %w", err)
	}
	return nil
}

// HardDelete физически удаляет локацию.
func (r *LocationRepo) HardDelete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("на локацию ссылаются удалённые записи: %w", domain.ErrStillReferenced)
		}
		return fmt.Errorf("hard delete location: %w", err)
	}
	return nil
}

// Restore снимает отметку удаления.
func (r *LocationRepo) Restore(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE locations SET deleted_at = NULL, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore location: %w", err)
	}
	return nil
}
