package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// DeviceRepository — порт персистентности для Device (DIP).
// Count-методы считают только активные (deleted_at IS NULL) девайсы:
// это опора guard-проверок перед удалением связанных сущностей.
type DeviceRepository interface {
	DeletionStore
	Create(ctx context.Context, device *entity.Device) error
	GetByID(ctx context.Context, id int64) (*entity.Device, error)
	Update(ctx context.Context, device *entity.Device) error
	// ListActive возвращает активные девайсы с именами типа, склада, локации и владельца.
	ListActive(ctx context.Context) ([]*entity.DeviceDetails, error)
	ListDeleted(ctx context.Context) ([]*entity.Device, error)
	CountActiveByType(ctx context.Context, typeID int64) (int, error)
	CountActiveByWarehouse(ctx context.Context, warehouseID int64) (int, error)
	CountActiveByLocation(ctx context.Context, locationID int64) (int, error)
	CountActiveByOwner(ctx context.Context, ownerID int64) (int, error)
	CountActiveByStatus(ctx context.Context) (map[string]int, error)
}
