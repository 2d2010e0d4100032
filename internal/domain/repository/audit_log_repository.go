package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// AuditFilter — фильтр чтения audit-лога. Пустой EntityType и нулевой
// EntityID означают «без фильтра».
type AuditFilter struct {
	EntityType string
	EntityID   int64
	Limit      int
}

// AuditLogRepository — порт персистентности журнала аудита.
// Только Create и Query: записи не обновляются и не удаляются.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	// Query возвращает записи от новых к старым, не больше filter.Limit.
	Query(ctx context.Context, filter AuditFilter) ([]*entity.AuditLog, error)
}
