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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo — реализация порта WarehouseRepository поверх PostgreSQL.
type WarehouseRepo struct {
	db DB
}

// NewWarehouseRepository конструирует адаптер персистентности складов.
func NewWarehouseRepository(db DB) *WarehouseRepo {
	return &WarehouseRepo{db: db}
}

// Create сохраняет новый склад.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (name, address, location_id, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		warehouse.Name, warehouse.Address, warehouse.LocationID,
		warehouse.CreatedAt, warehouse.UpdatedAt,
	).Scan(&warehouse.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID возвращает склад по id независимо от отметки удаления.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), location_id, created_at, updated_at, deleted_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.db.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Address, &w.LocationID, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update обновляет склад.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $2, address = NULLIF($3, ''), location_id = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		warehouse.ID, warehouse.Name, warehouse.Address, warehouse.LocationID, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// ListActive возвращает активные склады с числом активных девайсов на каждом
// (guard-проверка и списочная страница используют одни и те же данные).
func (r *WarehouseRepo) ListActive(ctx context.Context) ([]*entity.WarehouseWithCount, error) {
	query := `
		SELECT w.id, w.name, COALESCE(w.address, ''), w.location_id,
		       w.created_at, w.updated_at, w.deleted_at,
		       COALESCE(l.name, ''),
		       COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)
		FROM warehouses w
		LEFT JOIN locations l ON l.id = w.location_id
		LEFT JOIN devices d ON d.warehouse_id = w.id
		WHERE w.deleted_at IS NULL
		GROUP BY w.id, l.name
		ORDER BY w.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseWithCount
	for rows.Next() {
		var w entity.WarehouseWithCount
		if err := rows.Scan(
			&w.ID, &w.Name, &w.Address, &w.LocationID,
			&w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
			&w.LocationName, &w.DeviceCount,
		); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// ListDeleted возвращает удалённые склады, сначала недавние.
func (r *WarehouseRepo) ListDeleted(ctx context.Context) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), location_id, created_at, updated_at, deleted_at
		FROM warehouses WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deleted warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Address, &w.LocationID, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// SoftDelete помечает склад удалённым.
func (r *WarehouseRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE warehouses SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete warehouse: %w", err)
	}
	return nil
}

// HardDelete физически удаляет склад.
func (r *WarehouseRepo) HardDelete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("на склад ссылаются удалённые девайсы: %w", domain.ErrStillReferenced)
		}
		return fmt.Errorf("hard delete warehouse: %w", err)
	}
	return nil
}

// Restore снимает отметку удаления.
func (r *WarehouseRepo) Restore(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE warehouses SET deleted_at = NULL, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore warehouse: %w", err)
	}
	return nil
}
