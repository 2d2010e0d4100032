package repository

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// EmployeeRepository — порт персистентности для Employee (DIP).
type EmployeeRepository interface {
	DeletionStore
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	ListActive(ctx context.Context) ([]*entity.EmployeeWithCount, error)
	ListDeleted(ctx context.Context) ([]*entity.Employee, error)
	// Проверки дубликатов (без учёта регистра). excludeID > 0 исключает запись из поиска.
	ExistsName(ctx context.Context, firstName, lastName, middleName string, excludeID int64) (bool, error)
	ExistsEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	ExistsPhone(ctx context.Context, phone string, excludeID int64) (bool, error)
	ExistsTelegram(ctx context.Context, telegram string, excludeID int64) (bool, error)
	CountActiveByLocation(ctx context.Context, locationID int64) (int, error)
}
