package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo — реализация порта UserRepository поверх PostgreSQL.
type UserRepo struct {
	db DB
}

// NewUserRepository конструирует адаптер персистентности пользователей.
func NewUserRepository(db DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, password_hash, full_name, COALESCE(phone, ''),
	COALESCE(telegram, ''), role, is_active, created_at, updated_at, deleted_at`

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone,
		&u.Telegram, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt,
	)
}

// Create сохраняет нового пользователя.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, phone, telegram, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.Phone, user.Telegram,
		user.Role, user.IsActive, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID возвращает пользователя по id независимо от отметки удаления.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var u entity.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByEmail ищет активного пользователя по email (логин).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE lower(email) = lower($1) AND deleted_at IS NULL`
	var u entity.User
	if err := scanUser(r.db.QueryRow(ctx, query, email), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// Update обновляет пользователя.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, full_name = $4, phone = NULLIF($5, ''),
		    telegram = NULLIF($6, ''), role = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone,
		user.Telegram, user.Role, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListActive возвращает активных пользователей по email.
func (r *UserRepo) ListActive(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE deleted_at IS NULL ORDER BY email`
	return r.list(ctx, query)
}

// ListDeleted возвращает удалённых пользователей, сначала недавних.
func (r *UserRepo) ListDeleted(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	return r.list(ctx, query)
}

func (r *UserRepo) list(ctx context.Context, query string) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// FirstSuperAdmin возвращает первого активного супер-админа — получателя
// писем об удалении. nil, nil — супер-админа нет.
func (r *UserRepo) FirstSuperAdmin(ctx context.Context) (*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND is_active AND deleted_at IS NULL
		ORDER BY id LIMIT 1`
	var u entity.User
	if err := scanUser(r.db.QueryRow(ctx, query, entity.RoleSuperAdmin), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get super admin: %w", err)
	}
	return &u, nil
}

// SoftDelete помечает пользователя удалённым.
func (r *UserRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	return nil
}

// HardDelete физически удаляет пользователя. Записи аудита остаются:
// audit_logs.user_id — слабая ссылка без внешнего ключа.
func (r *UserRepo) HardDelete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	}
	return nil
}

// Restore снимает отметку удаления.
func (r *UserRepo) Restore(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET deleted_at = NULL, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}
