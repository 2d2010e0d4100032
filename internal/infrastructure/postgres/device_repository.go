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

var _ repository.DeviceRepository = (*DeviceRepo)(nil)

// DeviceRepo — реализация порта DeviceRepository поверх PostgreSQL.
type DeviceRepo struct {
	db DB
}

// NewDeviceRepository конструирует адаптер персистентности девайсов.
func NewDeviceRepository(db DB) *DeviceRepo {
	return &DeviceRepo{db: db}
}

const deviceColumns = `id, inventory_number, model, COALESCE(serial_number, ''), type_id,
	warehouse_id, location_id, owner_id, status, purchase_price, COALESCE(notes, ''),
	created_at, updated_at, deleted_at`

func scanDevice(row pgx.Row, d *entity.Device) error {
	return row.Scan(
		&d.ID, &d.InventoryNumber, &d.Model, &d.SerialNumber, &d.TypeID,
		&d.WarehouseID, &d.LocationID, &d.OwnerID, &d.Status, &d.PurchasePrice, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
	)
}

// Create сохраняет новый девайс.
func (r *DeviceRepo) Create(ctx context.Context, device *entity.Device) error {
	query := `
		INSERT INTO devices
			(inventory_number, model, serial_number, type_id, warehouse_id, location_id,
			 owner_id, status, purchase_price, notes, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		device.InventoryNumber, device.Model, device.SerialNumber, device.TypeID,
		device.WarehouseID, device.LocationID, device.OwnerID, device.Status,
		device.PurchasePrice, device.Notes, device.CreatedAt, device.UpdatedAt,
	).Scan(&device.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// GetByID возвращает девайс по id независимо от отметки удаления.
func (r *DeviceRepo) GetByID(ctx context.Context, id int64) (*entity.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = $1`
	var d entity.Device
	if err := scanDevice(r.db.QueryRow(ctx, query, id), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get device: %w", err)
	}
	return &d, nil
}

// Update обновляет девайс (включая привязку к складу/сотруднику и статус).
func (r *DeviceRepo) Update(ctx context.Context, device *entity.Device) error {
	query := `
		UPDATE devices
		SET inventory_number = $2, model = $3, serial_number = NULLIF($4, ''), type_id = $5,
		    warehouse_id = $6, location_id = $7, owner_id = $8, status = $9,
		    purchase_price = $10, notes = NULLIF($11, ''), updated_at = $12
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		device.ID, device.InventoryNumber, device.Model, device.SerialNumber, device.TypeID,
		device.WarehouseID, device.LocationID, device.OwnerID, device.Status,
		device.PurchasePrice, device.Notes, device.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// ListActive возвращает активные девайсы с именами связанных записей,
// от новых к старым (главная страница и PDF-отчёт).
func (r *DeviceRepo) ListActive(ctx context.Context) ([]*entity.DeviceDetails, error) {
	query := `
		SELECT d.id, d.inventory_number, d.model, COALESCE(d.serial_number, ''), d.type_id,
		       d.warehouse_id, d.location_id, d.owner_id, d.status, d.purchase_price,
		       COALESCE(d.notes, ''), d.created_at, d.updated_at, d.deleted_at,
		       COALESCE(t.name, ''), COALESCE(w.name, ''), COALESCE(l.name, ''),
		       COALESCE(e.last_name || ' ' || e.first_name || COALESCE(' ' || e.middle_name, ''), '')
		FROM devices d
		LEFT JOIN device_types t ON t.id = d.type_id
		LEFT JOIN warehouses w ON w.id = d.warehouse_id
		LEFT JOIN locations l ON l.id = d.location_id
		LEFT JOIN employees e ON e.id = d.owner_id
		WHERE d.deleted_at IS NULL
		ORDER BY d.created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeviceDetails
	for rows.Next() {
		var d entity.DeviceDetails
		if err := rows.Scan(
			&d.ID, &d.InventoryNumber, &d.Model, &d.SerialNumber, &d.TypeID,
			&d.WarehouseID, &d.LocationID, &d.OwnerID, &d.Status, &d.PurchasePrice,
			&d.Notes, &d.CreatedAt, &d.UpdatedAt, &d.DeletedAt,
			&d.TypeName, &d.WarehouseName, &d.LocationName, &d.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListDeleted возвращает удалённые девайсы, сначала недавние.
func (r *DeviceRepo) ListDeleted(ctx context.Context) ([]*entity.Device, error) {
	query := `SELECT ` + deviceColumns + `
		FROM devices WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deleted devices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Device
	for rows.Next() {
		var d entity.Device
		if err := scanDevice(rows, &d); err != nil {
			return nil, fmt.Errorf("scan device: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountActiveByType считает активные девайсы типа (guard типа девайса).
func (r *DeviceRepo) CountActiveByType(ctx context.Context, typeID int64) (int, error) {
	return r.countActive(ctx, `type_id`, typeID)
}

// CountActiveByWarehouse считает активные девайсы на складе (guard склада).
func (r *DeviceRepo) CountActiveByWarehouse(ctx context.Context, warehouseID int64) (int, error) {
	return r.countActive(ctx, `warehouse_id`, warehouseID)
}

// CountActiveByLocation считает активные девайсы в локации (guard локации).
func (r *DeviceRepo) CountActiveByLocation(ctx context.Context, locationID int64) (int, error) {
	return r.countActive(ctx, `location_id`, locationID)
}

// CountActiveByOwner считает активные девайсы у сотрудника (guard сотрудника).
func (r *DeviceRepo) CountActiveByOwner(ctx context.Context, ownerID int64) (int, error) {
	return r.countActive(ctx, `owner_id`, ownerID)
}

func (r *DeviceRepo) countActive(ctx context.Context, column string, id int64) (int, error) {
	// column приходит только из методов выше, не из пользовательского ввода
	query := fmt.Sprintf(`SELECT COUNT(*) FROM devices WHERE %s = $1 AND deleted_at IS NULL`, column)
	var count int
	if err := r.db.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("count devices by %s: %w", column, err)
	}
	return count, nil
}

// CountActiveByStatus возвращает число активных девайсов по статусам (дашборд).
func (r *DeviceRepo) CountActiveByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status, COUNT(*) FROM devices WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count devices by status: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// SoftDelete помечает девайс удалённым.
func (r *DeviceRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE devices SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete device: %w", err)
	}
	return nil
}

// HardDelete физически удаляет девайс вместе с его историей.
func (r *DeviceRepo) HardDelete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM device_history WHERE device_id = $1`, id); err != nil {
		return fmt.Errorf("hard delete device history: %w", err)
	}
	_, err := r.db.Exec(ctx, `DELETE FROM devices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete device: %w", err)
	}
	return nil
}

// Restore снимает отметку удаления.
func (r *DeviceRepo) Restore(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE devices SET deleted_at = NULL, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore device: %w", err)
	}
	return nil
}
