package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// DeviceHistoryRepository — порт персистентности для истории девайса (append-only).
type DeviceHistoryRepository interface {
	Create(ctx context.Context, record *entity.DeviceHistory) error
	ListByDevice(ctx context.Context, deviceID int64) ([]*entity.DeviceHistory, error)
}
