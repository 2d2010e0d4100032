package postgres

import (
	"context"
	"fmt"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

var _ repository.DeviceHistoryRepository = (*DeviceHistoryRepo)(nil)

// DeviceHistoryRepo — реализация порта DeviceHistoryRepository поверх PostgreSQL.
type DeviceHistoryRepo struct {
	db DB
}

// NewDeviceHistoryRepository конструирует адаптер персистентности истории девайсов.
func NewDeviceHistoryRepository(db DB) *DeviceHistoryRepo {
	return &DeviceHistoryRepo{db: db}
}

// Create добавляет запись истории.
func (r *DeviceHistoryRepo) Create(ctx context.Context, record *entity.DeviceHistory) error {
	query := `
		INSERT INTO device_history (device_id, event, note, from_location, to_location, actor, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		record.DeviceID, record.Event, record.Note,
		record.FromLocation, record.ToLocation, record.Actor, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("insert device history: %w", err)
	}
	return nil
}

// ListByDevice возвращает историю девайса от новых записей к старым.
func (r *DeviceHistoryRepo) ListByDevice(ctx context.Context, deviceID int64) ([]*entity.DeviceHistory, error) {
	query := `
		SELECT id, device_id, event, COALESCE(note, ''), COALESCE(from_location, ''),
		       COALESCE(to_location, ''), COALESCE(actor, ''), created_at
		FROM device_history WHERE device_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list device history: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeviceHistory
	for rows.Next() {
		var h entity.DeviceHistory
		if err := rows.Scan(
			&h.ID, &h.DeviceID, &h.Event, &h.Note,
			&h.FromLocation, &h.ToLocation, &h.Actor, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan device history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
