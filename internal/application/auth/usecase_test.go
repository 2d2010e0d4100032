package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ittest-team/device-accounting/internal/application/auth"
	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// Остальные методы порта в сценариях логина не участвуют.
func (r *memUserRepo) Create(context.Context, *entity.User) error           { return nil }
func (r *memUserRepo) GetByID(context.Context, int64) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(context.Context, *entity.User) error           { return nil }
func (r *memUserRepo) ListActive(context.Context) ([]*entity.User, error)   { return nil, nil }
func (r *memUserRepo) ListDeleted(context.Context) ([]*entity.User, error)  { return nil, nil }
func (r *memUserRepo) FirstSuperAdmin(context.Context) (*entity.User, error) {
	return nil, nil
}
func (r *memUserRepo) SoftDelete(context.Context, int64, time.Time) error { return nil }
func (r *memUserRepo) HardDelete(context.Context, int64) error            { return nil }
func (r *memUserRepo) Restore(context.Context, int64) error               { return nil }

func newUC(users ...*entity.User) *auth.UseCase {
	repo := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "device-accounting",
	})
}

func activeAdmin(t *testing.T) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	return &entity.User{
		ID:           7,
		Email:        "admin@ittest-team.ru",
		PasswordHash: string(hash),
		FullName:     "Администратор",
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	uc := newUC(activeAdmin(t))

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "  Admin@Ittest-Team.RU  ", // регистр и пробелы не мешают
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin@ittest-team.ru", resp.User.Email)
	assert.Equal(t, string(entity.RoleAdmin), resp.User.Role)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, 3, len(strings.Split(resp.Token, ".")), "JWT из трёх частей")

	userID, email, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "admin@ittest-team.ru", email)
	assert.Equal(t, "admin", role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc := newUC(activeAdmin(t))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@ittest-team.ru",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc := newUC(activeAdmin(t))

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@ittest-team.ru",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "отказ не раскрывает, существует ли учётная запись")
}

func TestLogin_InactiveUser(t *testing.T) {
	u := activeAdmin(t)
	u.IsActive = false
	uc := newUC(u)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@ittest-team.ru",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_SoftDeletedUser(t *testing.T) {
	u := activeAdmin(t)
	now := time.Now().UTC()
	u.DeletedAt = &now
	uc := newUC(u)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "admin@ittest-team.ru",
		Password: "correct-password",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
