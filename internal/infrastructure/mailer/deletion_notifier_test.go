package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/pkg/config"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

type stubUserRepo struct {
	super *entity.User
	err   error
}

func (r *stubUserRepo) FirstSuperAdmin(context.Context) (*entity.User, error) {
	return r.super, r.err
}

func (r *stubUserRepo) Create(context.Context, *entity.User) error           { return nil }
func (r *stubUserRepo) GetByID(context.Context, int64) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, nil
}
func (r *stubUserRepo) Update(context.Context, *entity.User) error          { return nil }
func (r *stubUserRepo) ListActive(context.Context) ([]*entity.User, error)  { return nil, nil }
func (r *stubUserRepo) ListDeleted(context.Context) ([]*entity.User, error) { return nil, nil }
func (r *stubUserRepo) SoftDelete(context.Context, int64, time.Time) error  { return nil }
func (r *stubUserRepo) HardDelete(context.Context, int64) error             { return nil }
func (r *stubUserRepo) Restore(context.Context, int64) error                { return nil }

func TestNotifyDeletion_SMTPNotConfigured(t *testing.T) {
	n := NewDeletionNotifier(config.SMTPConfig{}, &stubUserRepo{}, logger.Nop())

	sent := n.NotifyDeletion(context.Background(), entity.EntityDevice, "INV-001", "admin@ittest-team.ru", true)
	assert.False(t, sent, "без настроенного SMTP отправка не пытается идти в сеть")
}

func TestNotifyDeletion_NoSuperAdmin(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "mailer", Password: "secret", From: "noreply@ittest-team.ru"}
	n := NewDeletionNotifier(cfg, &stubUserRepo{super: nil}, logger.Nop())

	sent := n.NotifyDeletion(context.Background(), entity.EntityDevice, "INV-001", "admin@ittest-team.ru", false)
	assert.False(t, sent, "без получателя письмо не отправляется")
}

func TestNotifyDeletion_RepoError(t *testing.T) {
	cfg := config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "mailer", Password: "secret"}
	n := NewDeletionNotifier(cfg, &stubUserRepo{err: errors.New("соединение с БД потеряно")}, logger.Nop())

	sent := n.NotifyDeletion(context.Background(), entity.EntityDevice, "INV-001", "admin@ittest-team.ru", false)
	assert.False(t, sent, "ошибка поиска получателя — false, не паника")
}

func TestBuildBody(t *testing.T) {
	soft := buildBody(entity.EntityWarehouse, "Основной склад", "admin@ittest-team.ru", true)
	assert.Contains(t, soft, "Склад")
	assert.Contains(t, soft, "Основной склад")
	assert.Contains(t, soft, "admin@ittest-team.ru")
	assert.Contains(t, soft, "Мягкое удаление (можно восстановить)")

	hard := buildBody(entity.EntityUser, "Иванов Иван", "root@ittest-team.ru", false)
	assert.Contains(t, hard, "Окончательное удаление")
	assert.Contains(t, hard, "удален окончательно")
}
