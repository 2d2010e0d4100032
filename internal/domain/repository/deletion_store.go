package repository

import (
	"context"
	"time"
)

// DeletionStore — общая для всех удаляемых сущностей часть порта персистентности:
// мягкое удаление (отметка deleted_at), физическое удаление и восстановление.
// Реализуется каждым репозиторием удаляемой сущности.
type DeletionStore interface {
	SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error
	HardDelete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}
