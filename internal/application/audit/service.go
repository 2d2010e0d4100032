package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

// DefaultQueryLimit — предел выборки журнала по умолчанию.
const DefaultQueryLimit = 100

// Actor — аутентифицированный пользователь, выполняющий действие, плюс
// метаданные запроса. Передаётся явным параметром через все сервисы:
// глобального состояния сессии в приложении нет. nil-актор означает
// анонимное действие — такие действия не аудируются.
type Actor struct {
	ID        int64
	Email     string
	Role      entity.Role
	IP        string
	UserAgent string
}

// IsSuperAdmin безопасен для nil-актора.
func (a *Actor) IsSuperAdmin() bool {
	return a != nil && a.Role.IsSuperAdmin()
}

// Change — пара «старое/новое значение» изменённого поля.
type Change struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Entry — данные одной записи аудита. Changes — произвольная структура
// изменений: для update это map поле -> Change, для удаления — служебные
// флаги вида {"deleted_by": ..., "soft_delete": true}.
type Entry struct {
	Action     entity.AuditAction
	EntityType entity.EntityType
	EntityID   *int64
	EntityName string
	Changes    map[string]any
}

// Service — append-only журнал действий пользователей.
type Service struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewService создаёт сервис аудита.
func NewService(repo repository.AuditLogRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record пишет запись аудита. Если actor == nil, молча ничего не делает:
// анонимные действия не аудируются, это правило, а не ошибка.
func (s *Service) Record(ctx context.Context, actor *Actor, e Entry) error {
	return s.RecordIn(ctx, s.repo, actor, e)
}

// RecordIn пишет запись через переданный репозиторий — используется, когда
// запись должна попасть в ту же транзакцию, что и мутация сущности.
func (s *Service) RecordIn(ctx context.Context, repo repository.AuditLogRepository, actor *Actor, e Entry) error {
	if actor == nil {
		return nil
	}

	var changes string
	if len(e.Changes) > 0 {
		b, err := json.Marshal(e.Changes)
		if err != nil {
			return fmt.Errorf("audit: сериализация changes: %w", err)
		}
		changes = string(b)
	}

	rec := &entity.AuditLog{
		UserID:     actor.ID,
		Action:     e.Action,
		EntityType: e.EntityType.String(),
		EntityID:   e.EntityID,
		EntityName: e.EntityName,
		Changes:    changes,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
	}
	if err := repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("audit: запись: %w", err)
	}

	s.log.Info().
		Str("action", string(e.Action)).
		Str("entity_type", e.EntityType.String()).
		Str("user", actor.Email).
		Msg("AUDIT")
	return nil
}

// Query читает журнал: опциональные фильтры по типу и id сущности,
// от новых к старым, не больше Limit записей (по умолчанию 100).
func (s *Service) Query(ctx context.Context, filter repository.AuditFilter) ([]*entity.AuditLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	return s.repo.Query(ctx, filter)
}
