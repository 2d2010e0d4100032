package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/application/usecase"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

func newDeviceUC(e *env) *usecase.DeviceUseCase {
	return usecase.NewDeviceUseCase(
		e.devices, e.types, e.warehouses, e.employees, e.locations, e.history,
		e.deletionSvc, e.auditSvc,
	)
}

// deviceFixture — типовое окружение: тип, локации, склад, сотрудник.
type deviceFixture struct {
	typeID    int64
	warehouse *entity.Warehouse
	employee  *entity.Employee
}

func seedDeviceWorld(t *testing.T, e *env) deviceFixture {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	dt := &entity.DeviceType{Name: "Ноутбук", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.types.Create(ctx, dt))

	locKazan := &entity.Location{Name: "Казань", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.locations.Create(ctx, locKazan))
	locMoscow := &entity.Location{Name: "Москва", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.locations.Create(ctx, locMoscow))

	w := &entity.Warehouse{Name: "Основной склад", LocationID: locKazan.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.warehouses.Create(ctx, w))

	emp := &entity.Employee{
		FirstName: "Иван", LastName: "Иванов",
		LocationID: locMoscow.ID, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, e.employees.Create(ctx, emp))

	return deviceFixture{typeID: dt.ID, warehouse: w, employee: emp}
}

// ──────────────────────────────────────────────────────────────────────────────
// Создание
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceCreate_WarehouseAndOwnerAreExclusive(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	_, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
		OwnerID:         ptr(fx.employee.ID),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeviceCreate_OnWarehouse(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	resp, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		Model:           "ThinkPad T14",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DeviceStatusInStock, resp.Status)
	require.NotNil(t, resp.WarehouseID)
	assert.Equal(t, fx.warehouse.ID, *resp.WarehouseID)
	require.NotNil(t, resp.LocationID)
	assert.Equal(t, fx.warehouse.LocationID, *resp.LocationID, "локация наследуется от склада")
	assert.Nil(t, resp.OwnerID)

	rows, err := e.history.ListByDevice(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.HistoryCreated, rows[0].Event)
	assert.Contains(t, rows[0].Note, "Создан на складе")
	assert.Equal(t, "Казань", rows[0].ToLocation)
}

func TestDeviceCreate_AssignedToEmployee(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	resp, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-002",
		TypeID:          fx.typeID,
		OwnerID:         ptr(fx.employee.ID),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DeviceStatusAssigned, resp.Status)
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, fx.employee.ID, *resp.OwnerID)
	require.NotNil(t, resp.LocationID)
	assert.Equal(t, fx.employee.LocationID, *resp.LocationID, "локация наследуется от сотрудника")
}

func TestDeviceCreate_RequiresInventoryNumber(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	_, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "   ",
		TypeID:          fx.typeID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeviceCreate_UnknownTypeRejected(t *testing.T) {
	e := newEnv()
	seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	_, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-003",
		TypeID:          999,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Выдача и перемещение
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceAssign_MovesFromWarehouseToEmployee(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.NoError(t, err)

	resp, err := uc.Assign(context.Background(), e.admin(), created.ID, fx.employee.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.DeviceStatusAssigned, resp.Status)
	assert.Nil(t, resp.WarehouseID, "привязка к складу снимается")
	require.NotNil(t, resp.OwnerID)
	assert.Equal(t, fx.employee.ID, *resp.OwnerID)
	require.NotNil(t, resp.LocationID)
	assert.Equal(t, fx.employee.LocationID, *resp.LocationID)

	rows, err := e.history.ListByDevice(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2) // created + assigned, от новых к старым
	assert.Equal(t, entity.HistoryAssigned, rows[0].Event)
	assert.Equal(t, "Казань", rows[0].FromLocation)
	assert.Equal(t, "Москва", rows[0].ToLocation)

	assigns := e.audits.byAction(entity.ActionAssign)
	require.Len(t, assigns, 1)
	assert.Contains(t, assigns[0].Changes, "owner_id")
	assert.Contains(t, assigns[0].Changes, "warehouse_id")
}

func TestDeviceTransfer_FromEmployeeIsReturn(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		OwnerID:         ptr(fx.employee.ID),
	})
	require.NoError(t, err)

	resp, err := uc.Transfer(context.Background(), e.admin(), created.ID, fx.warehouse.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.DeviceStatusInStock, resp.Status)
	assert.Nil(t, resp.OwnerID, "владелец снимается")
	require.NotNil(t, resp.WarehouseID)
	assert.Equal(t, fx.warehouse.ID, *resp.WarehouseID)

	rows, err := e.history.ListByDevice(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.HistoryReturned, rows[0].Event, "возврат от сотрудника — событие return")
	assert.Contains(t, rows[0].Note, "Возвращён на склад")

	assert.Len(t, e.audits.byAction(entity.ActionReturn), 1)
	assert.Empty(t, e.audits.byAction(entity.ActionTransfer))
}

func TestDeviceTransfer_BetweenWarehousesIsTransfer(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	now := time.Now().UTC()
	second := &entity.Warehouse{Name: "Резервный склад", LocationID: fx.warehouse.LocationID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.warehouses.Create(context.Background(), second))

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.NoError(t, err)

	_, err = uc.Transfer(context.Background(), e.admin(), created.ID, second.ID)
	require.NoError(t, err)

	rows, err := e.history.ListByDevice(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.HistoryTransferred, rows[0].Event)
	assert.Contains(t, rows[0].Note, "Перемещён на склад: Резервный склад")

	assert.Len(t, e.audits.byAction(entity.ActionTransfer), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Обновление и списание
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceUpdate_RetireWritesHistory(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.NoError(t, err)

	resp, err := uc.Update(context.Background(), e.admin(), created.ID, dto.UpdateDeviceRequest{
		Status: ptr(entity.DeviceStatusRetired),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeviceStatusRetired, resp.Status)

	rows, err := e.history.ListByDevice(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.HistoryRetired, rows[0].Event)
	assert.Equal(t, "Девайс списан", rows[0].Note)
}

func TestDeviceUpdate_NoChangesNoAudit(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
	})
	require.NoError(t, err)

	before := len(e.audits.logs)
	_, err = uc.Update(context.Background(), e.admin(), created.ID, dto.UpdateDeviceRequest{
		InventoryNumber: ptr("INV-001"),
	})
	require.NoError(t, err)
	assert.Equal(t, before, len(e.audits.logs), "без изменений нет ни аудита, ни истории")
}

// ──────────────────────────────────────────────────────────────────────────────
// История
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceHistory_CombinesEventsAndAudit(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.NoError(t, err)
	_, err = uc.Assign(context.Background(), e.admin(), created.ID, fx.employee.ID)
	require.NoError(t, err)

	page, err := uc.History(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, page)

	assert.Len(t, page.History, 2)
	require.Len(t, page.Audit, 2, "в выдачу попадают записи аудита по девайсу")
	for _, a := range page.Audit {
		assert.Equal(t, "device", a.EntityType)
	}
}

func TestDeviceHistory_UnknownDeviceIsNil(t *testing.T) {
	e := newEnv()
	seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	page, err := uc.History(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, page)
}

// ──────────────────────────────────────────────────────────────────────────────
// Отказ записи следа: аудит и история не молчат
// ──────────────────────────────────────────────────────────────────────────────

func TestDeviceCreate_AuditWriteFailurePropagates(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)
	e.audits.createErr = errors.New("вставка audit_logs отклонена")

	_, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.Error(t, err, "отказ вставки аудита возвращается вызывающему")
	assert.Empty(t, e.audits.logs)
}

func TestDeviceCreate_HistoryWriteFailurePropagates(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)
	e.history.createErr = errors.New("вставка device_history отклонена")

	_, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.Error(t, err)
	assert.Empty(t, e.audits.logs, "после отказа истории аудит не пишется")
}

func TestDeviceAssign_AuditWriteFailurePropagates(t *testing.T) {
	e := newEnv()
	fx := seedDeviceWorld(t, e)
	uc := newDeviceUC(e)

	created, err := uc.Create(context.Background(), e.admin(), dto.CreateDeviceRequest{
		InventoryNumber: "INV-001",
		TypeID:          fx.typeID,
		WarehouseID:     ptr(fx.warehouse.ID),
	})
	require.NoError(t, err)

	e.audits.createErr = errors.New("вставка audit_logs отклонена")
	_, err = uc.Assign(context.Background(), e.admin(), created.ID, fx.employee.ID)
	require.Error(t, err)
}
