package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

// UserUseCase — управление учётными записями. Смена роли доступна только
// супер-админу; правила удаления: самого себя удалить нельзя, не-супер-админ
// не может удалять админов и супер-админов.
type UserUseCase struct {
	users    repository.UserRepository
	deletion *deletion.Service
	audit    *audit.Service
}

// NewUserUseCase конструирует usecase.
func NewUserUseCase(users repository.UserRepository, deletionSvc *deletion.Service, auditSvc *audit.Service) *UserUseCase {
	return &UserUseCase{users: users, deletion: deletionSvc, audit: auditSvc}
}

// Create создаёт пользователя; пароль хешируется bcrypt'ом, роль по умолчанию — user.
func (uc *UserUseCase) Create(ctx context.Context, actor *audit.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("неизвестная роль %q: %w", in.Role, domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	now := time.Now().UTC()
	u := &entity.User{
		Email:        normEmail(in.Email),
		PasswordHash: string(hash),
		FullName:     normName(in.FullName),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if u.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityUser,
		EntityID:   &u.ID,
		EntityName: u.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// GetByID возвращает пользователя или nil, если такого нет.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toUserResponse(u), nil
}

// List возвращает активных пользователей.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// ChangeRole меняет роль пользователя. Только супер-админ; смена аудируется.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor *audit.Actor, id int64, newRole entity.Role) (*dto.UserResponse, error) {
	if !actor.IsSuperAdmin() {
		return nil, domain.ErrForbidden
	}
	if !newRole.Valid() {
		return nil, fmt.Errorf("неизвестная роль %q: %w", newRole, domain.ErrInvalidInput)
	}

	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if u.Role == newRole {
		return toUserResponse(u), nil
	}

	oldRole := u.Role
	u.Role = newRole
	u.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionUpdate,
		EntityType: entity.EntityUser,
		EntityID:   &u.ID,
		EntityName: u.DisplayName(),
		Changes: map[string]any{
			"role": audit.Change{Old: string(oldRole), New: string(newRole)},
		},
	}); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// SetActive включает или выключает учётную запись.
func (uc *UserUseCase) SetActive(ctx context.Context, actor *audit.Actor, id int64, active bool) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if u.IsActive == active {
		return toUserResponse(u), nil
	}

	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionUpdate,
		EntityType: entity.EntityUser,
		EntityID:   &u.ID,
		EntityName: u.DisplayName(),
		Changes: map[string]any{
			"is_active": audit.Change{Old: !active, New: active},
		},
	}); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete удаляет пользователя по двухуровневой политике с дополнительными
// правилами: самого себя удалить нельзя; не-супер-админ не может удалять
// админов и супер-админов.
func (uc *UserUseCase) Delete(ctx context.Context, actor *audit.Actor, id int64) (deletion.Result, error) {
	if actor == nil {
		return deletion.Result{}, domain.ErrUnauthorized
	}
	if actor.ID == id {
		return deletion.Result{}, domain.ErrSelfDelete
	}

	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if u == nil {
		return deletion.Result{}, domain.ErrNotFound
	}
	if u.Role.IsAdmin() && !actor.Role.IsSuperAdmin() {
		return deletion.Result{}, domain.ErrForbidden
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{
		Type: entity.EntityUser,
		ID:   u.ID,
		Name: u.DisplayName(),
	})
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}
