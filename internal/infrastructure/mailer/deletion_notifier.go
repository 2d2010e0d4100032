package mailer

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
	"github.com/ittest-team/device-accounting/pkg/config"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

var _ deletion.Notifier = (*DeletionNotifier)(nil)

// DeletionNotifier шлёт письмо супер-админу о каждом удалении (мягком или
// физическом). Получатель разрешается в момент вызова: первый активный
// супер-админ в базе. Любая неудача — предупреждение в логе и false,
// удаление из-за почты не падает никогда.
type DeletionNotifier struct {
	cfg   config.SMTPConfig
	users repository.UserRepository
	log   *logger.Logger
}

// NewDeletionNotifier конструирует уведомитель.
func NewDeletionNotifier(cfg config.SMTPConfig, users repository.UserRepository, log *logger.Logger) *DeletionNotifier {
	return &DeletionNotifier{cfg: cfg, users: users, log: log}
}

// NotifyDeletion отправляет уведомление об удалении. Возвращает false при
// неполной конфигурации SMTP, отсутствии супер-админа и любой ошибке отправки.
func (n *DeletionNotifier) NotifyDeletion(ctx context.Context, entityType entity.EntityType, entityName, deletedBy string, isSoftDelete bool) (sent bool) {
	// Контракт границы: наружу не выходит ни ошибка, ни паника.
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Msg("паника при отправке уведомления об удалении")
			sent = false
		}
	}()

	if !n.cfg.Configured() {
		n.log.Warn().Msg("SMTP настроен не полностью, уведомление не отправлено")
		return false
	}

	admin, err := n.users.FirstSuperAdmin(ctx)
	if err != nil {
		n.log.Error().Err(err).Msg("поиск супер-админа для уведомления")
		return false
	}
	if admin == nil {
		n.log.Warn().Msg("супер-админ не найден, уведомление не отправлено")
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", admin.Email)
	m.SetHeader("Subject", fmt.Sprintf("Уведомление об удалении: %s", entityType.Localized()))
	m.SetBody("text/plain", buildBody(entityType, entityName, deletedBy, isSoftDelete))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Password)
	// Порт 465 использует SSL/TLS с самого начала, остальные — STARTTLS
	d.SSL = n.cfg.Port == 465

	if err := d.DialAndSend(m); err != nil {
		n.log.Error().Err(err).Str("to", admin.Email).Msg("ошибка отправки уведомления об удалении")
		return false
	}

	n.log.Info().Str("to", admin.Email).Str("entity", entityName).Msg("уведомление об удалении отправлено")
	return true
}

func buildBody(entityType entity.EntityType, entityName, deletedBy string, isSoftDelete bool) string {
	deleteKind := "удален окончательно"
	deleteNote := "Окончательное удаление"
	if isSoftDelete {
		deleteKind = "помечен как удаленный"
		deleteNote = "Мягкое удаление (можно восстановить)"
	}
	deleteTime := time.Now().UTC().Format("02.01.2006 15:04:05 UTC")

	return fmt.Sprintf(`Уважаемый администратор!

В системе Device Accounting был %s объект:

Тип: %s
Название: %s
Удален пользователем: %s
Дата и время удаления: %s
Тип удаления: %s

Вы можете просмотреть удаленные объекты в разделе "Удалено" системы.

---
Это автоматическое уведомление от системы Device Accounting.
`, deleteKind, entityType.Localized(), entityName, deletedBy, deleteTime, deleteNote)
}
