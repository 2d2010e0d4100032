package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/application/usecase"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

func newUserUC(e *env) *usecase.UserUseCase {
	return usecase.NewUserUseCase(e.users, e.deletionSvc, e.auditSvc)
}

func seedUser(t *testing.T, e *env, email string, role entity.Role) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u := &entity.User{
		Email:        email,
		PasswordHash: "$2a$10$stub",
		FullName:     "Тестовый Пользователь",
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Создание
// ──────────────────────────────────────────────────────────────────────────────

func TestUserCreate_HashesPasswordAndDefaultsRole(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)

	resp, err := uc.Create(context.Background(), e.superAdmin(), dto.CreateUserRequest{
		Email:    "New.Admin@Ittest-Team.RU",
		Password: "correct-horse-battery",
		FullName: "Новый Админ",
	})
	require.NoError(t, err)

	assert.Equal(t, "new.admin@ittest-team.ru", resp.Email, "email приводится к нижнему регистру")
	assert.Equal(t, string(entity.RoleUser), resp.Role, "роль по умолчанию — user")
	assert.True(t, resp.IsActive)

	stored, err := e.users.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct-horse-battery", stored.PasswordHash, "пароль не хранится открытым текстом")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse-battery")))
}

func TestUserCreate_RejectsUnknownRole(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)

	_, err := uc.Create(context.Background(), e.superAdmin(), dto.CreateUserRequest{
		Email:    "x@ittest-team.ru",
		Password: "password123",
		Role:     "owner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Смена роли
// ──────────────────────────────────────────────────────────────────────────────

func TestUserChangeRole_OnlySuperAdmin(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)
	u := seedUser(t, e, "target@ittest-team.ru", entity.RoleUser)

	_, err := uc.ChangeRole(context.Background(), e.admin(), u.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden, "обычный админ не меняет роли")

	resp, err := uc.ChangeRole(context.Background(), e.superAdmin(), u.ID, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleAdmin), resp.Role)

	updates := e.audits.byAction(entity.ActionUpdate)
	require.Len(t, updates, 1, "смена роли аудируется")
	assert.Contains(t, updates[0].Changes, "role")
}

// ──────────────────────────────────────────────────────────────────────────────
// Удаление: правила поверх общей политики
// ──────────────────────────────────────────────────────────────────────────────

func TestUserDelete_SelfDeleteForbidden(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)

	actor := e.superAdmin()
	seedUser(t, e, "root@ittest-team.ru", entity.RoleSuperAdmin) // ID 1 == actor.ID

	_, err := uc.Delete(context.Background(), actor, actor.ID)
	assert.ErrorIs(t, err, domain.ErrSelfDelete)
	assert.Empty(t, e.audits.logs)
}

func TestUserDelete_AdminCannotDeleteAdmin(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)
	target := seedUser(t, e, "other-admin@ittest-team.ru", entity.RoleAdmin)

	_, err := uc.Delete(context.Background(), e.admin(), target.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := e.users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.DeletedAt, "запись не тронута")
}

func TestUserDelete_AdminSoftDeletesPlainUser(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)
	target := seedUser(t, e, "user@ittest-team.ru", entity.RoleUser)

	result, err := uc.Delete(context.Background(), e.admin(), target.ID)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Contains(t, result.Message, "перемещен в раздел 'Удалено'")

	got, err := e.users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.DeletedAt)
}

func TestUserDelete_SuperAdminHardDeletesAdmin(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)
	target := seedUser(t, e, "admin2@ittest-team.ru", entity.RoleAdmin)

	result, err := uc.Delete(context.Background(), e.superAdmin(), target.ID)
	require.NoError(t, err)
	assert.True(t, result.OK)

	got, err := e.users.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	deletes := e.audits.byAction(entity.ActionDelete)
	require.Len(t, deletes, 1)
	assert.Equal(t, "user", deletes[0].EntityType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Активация
// ──────────────────────────────────────────────────────────────────────────────

func TestUserSetActive_Toggles(t *testing.T) {
	e := newEnv()
	uc := newUserUC(e)
	u := seedUser(t, e, "user@ittest-team.ru", entity.RoleUser)

	resp, err := uc.SetActive(context.Background(), e.superAdmin(), u.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	// повторное выключение — no-op без аудита
	before := len(e.audits.logs)
	_, err = uc.SetActive(context.Background(), e.superAdmin(), u.ID, false)
	require.NoError(t, err)
	assert.Equal(t, before, len(e.audits.logs))
}
