package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// WarehouseRepository — порт персистентности для Warehouse (DIP).
type WarehouseRepository interface {
	DeletionStore
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	// ListActive возвращает активные склады с числом активных девайсов на каждом.
	ListActive(ctx context.Context) ([]*entity.WarehouseWithCount, error)
	ListDeleted(ctx context.Context) ([]*entity.Warehouse, error)
}
