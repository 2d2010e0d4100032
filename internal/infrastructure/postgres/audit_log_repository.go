package postgres

import (
	"context"
	"fmt"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo — реализация порта AuditLogRepository поверх PostgreSQL.
// Журнал append-only: только INSERT и SELECT.
type AuditLogRepo struct {
	db DB
}

// NewAuditLogRepository конструирует адаптер персистентности журнала аудита.
func NewAuditLogRepository(db DB) *AuditLogRepo {
	return &AuditLogRepo{db: db}
}

// Create добавляет запись журнала. Пустой Changes хранится как NULL, а не как "{}".
func (r *AuditLogRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs
			(user_id, action, entity_type, entity_id, entity_name, changes, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), now())
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query,
		log.UserID, log.Action, log.EntityType, log.EntityID,
		log.EntityName, log.Changes, log.IPAddress, log.UserAgent,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// Query возвращает записи журнала с опциональными фильтрами по типу и id
// сущности, от новых к старым, не больше filter.Limit.
func (r *AuditLogRepo) Query(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLog, error) {
	query := `
		SELECT a.id, a.user_id, a.action, a.entity_type, a.entity_id,
		       COALESCE(a.entity_name, ''), COALESCE(a.changes, ''),
		       COALESCE(a.ip_address, ''), COALESCE(a.user_agent, ''), a.created_at,
		       COALESCE(u.email, '')
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE ($1 = '' OR a.entity_type = $1)
		  AND ($2 = 0 OR a.entity_id = $2)
		ORDER BY a.created_at DESC
		LIMIT $3`
	rows, err := r.db.Query(ctx, query, filter.EntityType, filter.EntityID, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var a entity.AuditLog
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID,
			&a.EntityName, &a.Changes, &a.IPAddress, &a.UserAgent, &a.CreatedAt,
			&a.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
