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

var _ repository.DeviceTypeRepository = (*DeviceTypeRepo)(nil)

// DeviceTypeRepo — реализация порта DeviceTypeRepository поверх PostgreSQL.
type DeviceTypeRepo struct {
	db DB
}

// NewDeviceTypeRepository конструирует адаптер персистентности типов девайсов.
func NewDeviceTypeRepository(db DB) *DeviceTypeRepo {
	return &DeviceTypeRepo{db: db}
}

// Create сохраняет новый тип девайса.
func (r *DeviceTypeRepo) Create(ctx context.Context, deviceType *entity.DeviceType) error {
	query := `
		INSERT INTO device_types (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		deviceType.Name, deviceType.CreatedAt, deviceType.UpdatedAt,
	).Scan(&deviceType.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device type: %w", err)
	}
	return nil
}

// GetByID возвращает тип девайса по id независимо от отметки удаления.
func (r *DeviceTypeRepo) GetByID(ctx context.Context, id int64) (*entity.DeviceType, error) {
	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM device_types WHERE id = $1`
	var t entity.DeviceType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device type: %w", err)
	}
	return &t, nil
}

// Update обновляет тип девайса.
func (r *DeviceTypeRepo) Update(ctx context.Context, deviceType *entity.DeviceType) error {
	query := `UPDATE device_types SET name = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, deviceType.ID, deviceType.Name, deviceType.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update device type: %w", err)
	}
	return nil
}

// ListActive возвращает активные типы с числом активных девайсов каждого типа.
func (r *DeviceTypeRepo) ListActive(ctx context.Context) ([]*entity.DeviceTypeWithCount, error) {
	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at, t.deleted_at,
		       COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)
		FROM device_types t
		LEFT JOIN devices d ON d.type_id = t.id
		WHERE t.deleted_at IS NULL
		GROUP BY t.id
		ORDER BY t.name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list device types: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeviceTypeWithCount
	for rows.Next() {
		var t entity.DeviceTypeWithCount
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt, &t.DeviceCount); err != nil {
			return nil, fmt.Errorf("scan device type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// ListDeleted возвращает удалённые типы, сначала недавние.
func (r *DeviceTypeRepo) ListDeleted(ctx context.Context) ([]*entity.DeviceType, error) {
	query := `
		SELECT id, name, created_at, updated_at, deleted_at
		FROM device_types WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deleted device types: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeviceType
	for rows.Next() {
		var t entity.DeviceType
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan device type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SoftDelete помечает тип удалённым.
func (r *DeviceTypeRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE device_types SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete device type: %w", err)
	}
	return nil
}

// HardDelete физически удаляет тип.
func (r *DeviceTypeRepo) HardDelete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM device_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("на тип ссылаются удалённые девайсы: %w", domain.ErrStillReferenced)
		}
		return fmt.Errorf("hard delete device type: %w", err)
	}
	return nil
}

// Restore снимает отметку удаления.
func (r *DeviceTypeRepo) Restore(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE device_types SET deleted_at = NULL, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore device type: %w", err)
	}
	return nil
}
