package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

// Проверка интерфейса на этапе компиляции.
var _ deletion.TxRunner = (*TxRunner)(nil)

// TxRunner выполняет callback внутри транзакции PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner конструирует runner поверх пула.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunDeletion открывает транзакцию, передаёт fn хранилища всех удаляемых
// сущностей и репозиторий аудита, привязанные к этой транзакции, и делает
// Commit либо Rollback. Так мутация записи и запись аудита коммитятся как
// одно целое.
func (r *TxRunner) RunDeletion(ctx context.Context, fn func(stores deletion.Stores, audits repository.AuditLogRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stores := deletion.Stores{
		entity.EntityDevice:     NewDeviceRepository(tx),
		entity.EntityEmployee:   NewEmployeeRepository(tx),
		entity.EntityWarehouse:  NewWarehouseRepository(tx),
		entity.EntityLocation:   NewLocationRepository(tx),
		entity.EntityDeviceType: NewDeviceTypeRepository(tx),
		entity.EntityUser:       NewUserRepository(tx),
	}

	if err := fn(stores, NewAuditLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
