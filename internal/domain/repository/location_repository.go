package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// LocationRepository — порт персистентности для Location (DIP).
type LocationRepository interface {
	DeletionStore
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	GetByName(ctx context.Context, name string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	ListActive(ctx context.Context) ([]*entity.Location, error)
	ListDeleted(ctx context.Context) ([]*entity.Location, error)
}
