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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo — реализация порта EmployeeRepository поверх PostgreSQL.
type EmployeeRepo struct {
	db DB
}

// NewEmployeeRepository конструирует адаптер персистентности сотрудников.
func NewEmployeeRepository(db DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeColumns = `id, first_name, last_name, COALESCE(middle_name, ''), position,
	email, phone, COALESCE(telegram, ''), location_id, created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row, e *entity.Employee) error {
	return row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.MiddleName, &e.Position,
		&e.Email, &e.Phone, &e.Telegram, &e.LocationID,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
}

// Create сохраняет нового сотрудника.
func (r *EmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	query := `
		INSERT INTO employees
			(first_name, last_name, middle_name, position, email, phone, telegram, location_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), $8, $9, $10)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		employee.FirstName, employee.LastName, employee.MiddleName, employee.Position,
		employee.Email, employee.Phone, employee.Telegram, employee.LocationID,
		employee.CreatedAt, employee.UpdatedAt,
	).Scan(&employee.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID возвращает сотрудника по id независимо от отметки удаления.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	var e entity.Employee
	if err := scanEmployee(r.db.QueryRow(ctx, query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// Update обновляет сотрудника.
func (r *EmployeeRepo) Update(ctx context.Context, employee *entity.Employee) error {
	query := `
		UPDATE employees
		SET first_name = $2, last_name = $3, middle_name = NULLIF($4, ''), position = $5,
		    email = $6, phone = $7, telegram = NULLIF($8, ''), location_id = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query,
		employee.ID, employee.FirstName, employee.LastName, employee.MiddleName, employee.Position,
		employee.Email, employee.Phone, employee.Telegram, employee.LocationID, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// ListActive возвращает активных сотрудников с числом девайсов на руках,
// отсортированных по ФИО.
func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.EmployeeWithCount, error) {
	query := `
		SELECT e.id, e.first_name, e.last_name, COALESCE(e.middle_name, ''), e.position,
		       e.email, e.phone, COALESCE(e.telegram, ''), e.location_id,
		       e.created_at, e.updated_at, e.deleted_at,
		       COALESCE(l.name, ''),
		       COUNT(d.id) FILTER (WHERE d.deleted_at IS NULL)
		FROM employees e
		LEFT JOIN locations l ON l.id = e.location_id
		LEFT JOIN devices d ON d.owner_id = e.id
		WHERE e.deleted_at IS NULL
		GROUP BY e.id, l.name
		ORDER BY e.last_name, e.first_name, e.middle_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.EmployeeWithCount
	for rows.Next() {
		var e entity.EmployeeWithCount
		if err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.MiddleName, &e.Position,
			&e.Email, &e.Phone, &e.Telegram, &e.LocationID,
			&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
			&e.LocationName, &e.DeviceCount,
		); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListDeleted возвращает удалённых сотрудников, сначала недавних.
func (r *EmployeeRepo) ListDeleted(ctx context.Context) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + `
		FROM employees WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deleted employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ExistsName проверяет дубликат по тройке ФИО без учёта регистра.
func (r *EmployeeRepo) ExistsName(ctx context.Context, firstName, lastName, middleName string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE lower(first_name) = lower($1)
			  AND lower(last_name) = lower($2)
			  AND lower(COALESCE(middle_name, '')) = lower($3)
			  AND ($4 = 0 OR id <> $4)
		)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, firstName, lastName, middleName, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists employee name: %w", err)
	}
	return exists, nil
}

// ExistsEmail проверяет дубликат email без учёта регистра.
func (r *EmployeeRepo) ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return r.existsField(ctx, "email", email, excludeID)
}

// ExistsPhone проверяет дубликат телефона.
func (r *EmployeeRepo) ExistsPhone(ctx context.Context, phone string, excludeID int64) (bool, error) {
	return r.existsField(ctx, "phone", phone, excludeID)
}

// ExistsTelegram проверяет дубликат telegram.
func (r *EmployeeRepo) ExistsTelegram(ctx context.Context, telegram string, excludeID int64) (bool, error) {
	return r.existsField(ctx, "telegram", telegram, excludeID)
}

func (r *EmployeeRepo) existsField(ctx context.Context, column, value string, excludeID int64) (bool, error) {
	// column приходит только из методов выше, не из пользовательского ввода
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE lower(%s) = lower($1) AND ($2 = 0 OR id <> $2)
		)`, column)
	var exists bool
	if err := r.db.QueryRow(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists employee %s: %w", column, err)
	}
	return exists, nil
}

// CountActiveByLocation считает активных сотрудников в локации (guard локации).
func (r *EmployeeRepo) CountActiveByLocation(ctx context.Context, locationID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE location_id = $1 AND deleted_at IS NULL`, locationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees by location: %w", err)
	}
	return count, nil
}

// SoftDelete помечает сотрудника удалённым.
func (r *EmployeeRepo) SoftDelete(ctx context.Context, id int64, deletedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employees SET deleted_at = $2, updated_at = $2 WHERE id = $1`, id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete employee: %w", err)
	}
	return nil
}

// HardDelete физически удаляет сотрудника.
func (r *EmployeeRepo) HardDelete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("на сотрудника ссылаются удалённые девайсы: %w", domain.ErrStillReferenced)
		}
		return fmt.Errorf("hard delete employee: %w", err)
	}
	return nil
}

// Restore снимает отметку удаления.
func (r *EmployeeRepo) Restore(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employees SET deleted_at = NULL, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("restore employee: %w", err)
	}
	return nil
}
