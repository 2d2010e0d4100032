package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// UserRepository — порт персистентности для User (DIP).
type UserRepository interface {
	DeletionStore
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListActive(ctx context.Context) ([]*entity.User, error)
	ListDeleted(ctx context.Context) ([]*entity.User, error)
	// FirstSuperAdmin возвращает первого активного супер-админа —
	// получателя писем об удалении. nil, nil — супер-админа нет.
	FirstSuperAdmin(ctx context.Context) (*entity.User, error)
}
