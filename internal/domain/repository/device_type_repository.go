package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// DeviceTypeRepository — порт персистентности для DeviceType (DIP).
type DeviceTypeRepository interface {
	DeletionStore
	Create(ctx context.Context, deviceType *entity.DeviceType) error
	GetByID(ctx context.Context, id int64) (*entity.DeviceType, error)
	Update(ctx context.Context, deviceType *entity.DeviceType) error
	ListActive(ctx context.Context) ([]*entity.DeviceTypeWithCount, error)
	ListDeleted(ctx context.Context) ([]*entity.DeviceType, error)
}
