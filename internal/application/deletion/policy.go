// Package deletion реализует двухуровневую политику удаления: супер-админ
// удаляет записи физически, остальные админы — мягко (отметка deleted_at).
// Мутация сущности и запись аудита выполняются в одной транзакции;
// почтовое уведомление отправляется после коммита и никогда не блокирует
// результат удаления.
package deletion

import (
	"context"
	"fmt"
	"time"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

// Stores — хранилища удаляемых сущностей по их типу.
type Stores map[entity.EntityType]repository.DeletionStore

// TxRunner выполняет callback в одной транзакции БД, передавая привязанные
// к ней хранилища и репозиторий аудита.
type TxRunner interface {
	RunDeletion(ctx context.Context, fn func(stores Stores, audits repository.AuditLogRepository) error) error
}

// Notifier — граница почтовых уведомлений. Возвращает false при любой
// неудаче и никогда не паникует за своей границей.
type Notifier interface {
	NotifyDeletion(ctx context.Context, entityType entity.EntityType, entityName, deletedBy string, isSoftDelete bool) bool
}

// Target — удаляемая сущность: тип, id и заранее разрешённое отображаемое имя
// (per-type метод DisplayName, без рефлексии).
type Target struct {
	Type entity.EntityType
	ID   int64
	Name string
}

// Result — исход операции для показа пользователю.
type Result struct {
	OK      bool
	Message string
}

// Service — политика удаления.
type Service struct {
	tx       TxRunner
	audit    *audit.Service
	notifier Notifier
	log      *logger.Logger
}

// NewService создаёт политику удаления.
func NewService(tx TxRunner, auditSvc *audit.Service, notifier Notifier, log *logger.Logger) *Service {
	return &Service{tx: tx, audit: auditSvc, notifier: notifier, log: log}
}

// Delete удаляет сущность по роли актора: супер-админ — физически, иначе —
// мягко. Ровно одна запись аудита и ровно одна попытка уведомления на вызов.
// Guard-проверки зависимых записей выполняет вызывающий usecase до Delete.
func (s *Service) Delete(ctx context.Context, actor *audit.Actor, t Target) (Result, error) {
	if actor == nil {
		return Result{}, domain.ErrUnauthorized
	}

	hard := actor.Role.IsSuperAdmin()
	now := time.Now().UTC()

	err := s.tx.RunDeletion(ctx, func(stores Stores, audits repository.AuditLogRepository) error {
		store, ok := stores[t.Type]
		if !ok {
			return domain.ErrUnknownEntityType
		}

		if hard {
			if err := store.HardDelete(ctx, t.ID); err != nil {
				return err
			}
			// id сохраняем из снимка до удаления; флага soft_delete в payload нет
			id := t.ID
			return s.audit.RecordIn(ctx, audits, actor, audit.Entry{
				Action:     entity.ActionDelete,
				EntityType: t.Type,
				EntityID:   &id,
				EntityName: t.Name,
			})
		}

		if err := store.SoftDelete(ctx, t.ID, now); err != nil {
			return err
		}
		id := t.ID
		return s.audit.RecordIn(ctx, audits, actor, audit.Entry{
			Action:     entity.ActionDelete,
			EntityType: t.Type,
			EntityID:   &id,
			EntityName: t.Name,
			Changes: map[string]any{
				"deleted_by":  actor.Email,
				"soft_delete": true,
			},
		})
	})
	if err != nil {
		return Result{}, err
	}

	if sent := s.notifier.NotifyDeletion(ctx, t.Type, t.Name, actor.Email, !hard); !sent {
		s.log.Warn().
			Str("entity_type", t.Type.String()).
			Str("entity_name", t.Name).
			Msg("уведомление об удалении не отправлено")
	}

	if hard {
		s.log.Info().
			Str("entity_type", t.Type.String()).
			Str("entity_name", t.Name).
			Int64("entity_id", t.ID).
			Str("deleted_by", actor.Email).
			Msg("запись удалена физически")
		return Result{OK: true, Message: fmt.Sprintf("%s '%s' удален", t.Type.Localized(), t.Name)}, nil
	}

	s.log.Info().
		Str("entity_type", t.Type.String()).
		Str("entity_name", t.Name).
		Int64("entity_id", t.ID).
		Str("deleted_by", actor.Email).
		Msg("запись помечена удалённой")
	return Result{OK: true, Message: fmt.Sprintf("%s '%s' перемещен в раздел 'Удалено'", t.Type.Localized(), t.Name)}, nil
}

// Restore снимает отметку deleted_at и пишет запись аудита action=restore —
// история удалений и восстановлений симметрична.
func (s *Service) Restore(ctx context.Context, actor *audit.Actor, t Target) (Result, error) {
	if actor == nil {
		return Result{}, domain.ErrUnauthorized
	}

	err := s.tx.RunDeletion(ctx, func(stores Stores, audits repository.AuditLogRepository) error {
		store, ok := stores[t.Type]
		if !ok {
			return domain.ErrUnknownEntityType
		}
		if err := store.Restore(ctx, t.ID); err != nil {
			return err
		}
		id := t.ID
		return s.audit.RecordIn(ctx, audits, actor, audit.Entry{
			Action:     entity.ActionRestore,
			EntityType: t.Type,
			EntityID:   &id,
			EntityName: t.Name,
			Changes: map[string]any{
				"restored_by": actor.Email,
			},
		})
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info().
		Str("entity_type", t.Type.String()).
		Str("entity_name", t.Name).
		Int64("entity_id", t.ID).
		Str("restored_by", actor.Email).
		Msg("запись восстановлена")
	return Result{OK: true, Message: fmt.Sprintf("%s '%s' восстановлен", t.Type.Localized(), t.Name)}, nil
}
