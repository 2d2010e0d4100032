package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

// DeviceUseCase — жизненный цикл девайса: создание, обновление полей,
// выдача сотруднику, перемещение на склад, списание, история, удаление.
// Девайс привязан либо к складу, либо к владельцу, но не к обоим сразу;
// локация всегда выводится из текущей привязки.
type DeviceUseCase struct {
	devices    repository.DeviceRepository
	types      repository.DeviceTypeRepository
	warehouses repository.WarehouseRepository
	employees  repository.EmployeeRepository
	locations  repository.LocationRepository
	history    repository.DeviceHistoryRepository
	deletion   *deletion.Service
	audit      *audit.Service
}

// NewDeviceUseCase конструирует usecase.
func NewDeviceUseCase(
	devices repository.DeviceRepository,
	types repository.DeviceTypeRepository,
	warehouses repository.WarehouseRepository,
	employees repository.EmployeeRepository,
	locations repository.LocationRepository,
	history repository.DeviceHistoryRepository,
	deletionSvc *deletion.Service,
	auditSvc *audit.Service,
) *DeviceUseCase {
	return &DeviceUseCase{
		devices:    devices,
		types:      types,
		warehouses: warehouses,
		employees:  employees,
		locations:  locations,
		history:    history,
		deletion:   deletionSvc,
		audit:      auditSvc,
	}
}

// Create создаёт девайс. Если задан склад — девайс на складе (in_stock),
// если владелец — выдан (assigned); оба сразу — ошибка.
func (uc *DeviceUseCase) Create(ctx context.Context, actor *audit.Actor, in dto.CreateDeviceRequest) (*dto.DeviceResponse, error) {
	if in.WarehouseID != nil && in.OwnerID != nil {
		return nil, fmt.Errorf("девайс не может быть одновременно на складе и у сотрудника: %w", domain.ErrInvalidInput)
	}

	d := &entity.Device{
		InventoryNumber: normName(in.InventoryNumber),
		Model:           normName(in.Model),
		SerialNumber:    normName(in.SerialNumber),
		TypeID:          in.TypeID,
		PurchasePrice:   in.PurchasePrice,
		Notes:           in.Notes,
		Status:          entity.DeviceStatusInStock,
	}
	if d.InventoryNumber == "" {
		return nil, fmt.Errorf("инвентарный номер обязателен: %w", domain.ErrInvalidInput)
	}

	dt, err := uc.types.GetByID(ctx, in.TypeID)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, fmt.Errorf("тип девайса %d не найден: %w", in.TypeID, domain.ErrNotFound)
	}

	var note string
	switch {
	case in.WarehouseID != nil:
		w, err := uc.warehouses.GetByID(ctx, *in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, fmt.Errorf("склад %d не найден: %w", *in.WarehouseID, domain.ErrNotFound)
		}
		d.WarehouseID = &w.ID
		locID := w.LocationID
		d.LocationID = &locID
		note = "Создан на складе: " + w.Name
	case in.OwnerID != nil:
		e, err := uc.employees.GetByID(ctx, *in.OwnerID)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, fmt.Errorf("сотрудник %d не найден: %w", *in.OwnerID, domain.ErrNotFound)
		}
		d.OwnerID = &e.ID
		locID := e.LocationID
		d.LocationID = &locID
		d.Status = entity.DeviceStatusAssigned
		note = "Создан и выдан сотруднику: " + e.FullName()
	default:
		note = "Создан без привязки"
	}

	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := uc.devices.Create(ctx, d); err != nil {
		return nil, err
	}

	if err := uc.history.Create(ctx, &entity.DeviceHistory{
		DeviceID:   d.ID,
		Event:      entity.HistoryCreated,
		Note:       note,
		ToLocation: uc.locationName(ctx, d.LocationID),
		CreatedAt:  now,
	}); err != nil {
		return nil, err
	}
	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityDevice,
		EntityID:   &d.ID,
		EntityName: d.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, d), nil
}

// GetByID возвращает девайс или nil, если такого нет.
func (uc *DeviceUseCase) GetByID(ctx context.Context, id int64) (*dto.DeviceResponse, error) {
	d, err := uc.devices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, d), nil
}

// List возвращает активные девайсы с именами связанных записей.
func (uc *DeviceUseCase) List(ctx context.Context) ([]dto.DeviceResponse, error) {
	list, err := uc.devices.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDeviceDetailsResponse(d))
	}
	return out, nil
}

// Update изменяет скалярные поля девайса; изменённые поля попадают в аудит,
// списание (status=retired) дополнительно пишется в историю.
func (uc *DeviceUseCase) Update(ctx context.Context, actor *audit.Actor, id int64, in dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	d, err := uc.devices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}

	changes := map[string]any{}
	if in.InventoryNumber != nil {
		if v := normName(*in.InventoryNumber); v == "" {
			return nil, fmt.Errorf("инвентарный номер обязателен: %w", domain.ErrInvalidInput)
		} else if v != d.InventoryNumber {
			changes["inventory_number"] = audit.Change{Old: d.InventoryNumber, New: v}
			d.InventoryNumber = v
		}
	}
	if in.Model != nil {
		if v := normName(*in.Model); v != d.Model {
			changes["model"] = audit.Change{Old: d.Model, New: v}
			d.Model = v
		}
	}
	if in.SerialNumber != nil {
		if v := normName(*in.SerialNumber); v != d.SerialNumber {
			changes["serial_number"] = audit.Change{Old: d.SerialNumber, New: v}
			d.SerialNumber = v
		}
	}
	if in.TypeID != nil && *in.TypeID != d.TypeID {
		dt, err := uc.types.GetByID(ctx, *in.TypeID)
		if err != nil {
			return nil, err
		}
		if dt == nil {
			return nil, fmt.Errorf("тип девайса %d не найден: %w", *in.TypeID, domain.ErrNotFound)
		}
		changes["type_id"] = audit.Change{Old: d.TypeID, New: *in.TypeID}
		d.TypeID = *in.TypeID
	}
	retired := false
	if in.Status != nil && *in.Status != d.Status {
		changes["status"] = audit.Change{Old: d.Status, New: *in.Status}
		retired = *in.Status == entity.DeviceStatusRetired
		d.Status = *in.Status
	}
	if in.PurchasePrice != nil {
		old := ""
		if d.PurchasePrice.Valid {
			old = d.PurchasePrice.Decimal.String()
		}
		next := ""
		if in.PurchasePrice.Valid {
			next = in.PurchasePrice.Decimal.String()
		}
		if old != next {
			changes["purchase_price"] = audit.Change{Old: old, New: next}
			d.PurchasePrice = *in.PurchasePrice
		}
	}
	if in.Notes != nil && *in.Notes != d.Notes {
		changes["notes"] = audit.Change{Old: d.Notes, New: *in.Notes}
		d.Notes = *in.Notes
	}

	if len(changes) == 0 {
		return uc.toResponse(ctx, d), nil
	}

	now := time.Now().UTC()
	d.UpdatedAt = now
	if err := uc.devices.Update(ctx, d); err != nil {
		return nil, err
	}

	event := entity.HistoryUpdated
	note := "Изменены поля девайса"
	if retired {
		event = entity.HistoryRetired
		note = "Девайс списан"
	}
	if err := uc.history.Create(ctx, &entity.DeviceHistory{
		DeviceID:  d.ID,
		Event:     event,
		Note:      note,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionUpdate,
		EntityType: entity.EntityDevice,
		EntityID:   &d.ID,
		EntityName: d.DisplayName(),
		Changes:    changes,
	}); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, d), nil
}

// Assign выдаёт девайс сотруднику: снимается привязка к складу, локация
// наследуется от сотрудника, статус становится assigned.
func (uc *DeviceUseCase) Assign(ctx context.Context, actor *audit.Actor, deviceID, employeeID int64) (*dto.DeviceResponse, error) {
	d, err := uc.devices.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	e, err := uc.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("сотрудник %d не найден: %w", employeeID, domain.ErrNotFound)
	}

	fromLoc := uc.locationName(ctx, d.LocationID)
	changes := map[string]any{
		"owner_id": audit.Change{Old: derefID(d.OwnerID), New: e.ID},
		"status":   audit.Change{Old: d.Status, New: entity.DeviceStatusAssigned},
	}
	if d.WarehouseID != nil {
		changes["warehouse_id"] = audit.Change{Old: *d.WarehouseID, New: nil}
	}

	now := time.Now().UTC()
	locID := e.LocationID
	d.OwnerID = &e.ID
	d.WarehouseID = nil
	d.LocationID = &locID
	d.Status = entity.DeviceStatusAssigned
	d.UpdatedAt = now
	if err := uc.devices.Update(ctx, d); err != nil {
		return nil, err
	}

	if err := uc.history.Create(ctx, &entity.DeviceHistory{
		DeviceID:     d.ID,
		Event:        entity.HistoryAssigned,
		Note:         "Выдан сотруднику: " + e.FullName(),
		FromLocation: fromLoc,
		ToLocation:   uc.locationName(ctx, d.LocationID),
		Actor:        e.FullName(),
		CreatedAt:    now,
	}); err != nil {
		return nil, err
	}
	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionAssign,
		EntityType: entity.EntityDevice,
		EntityID:   &d.ID,
		EntityName: d.DisplayName(),
		Changes:    changes,
	}); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, d), nil
}

// Transfer перемещает девайс на склад: привязка к владельцу снимается,
// локация наследуется от склада, статус становится in_stock. Для девайса,
// бывшего на руках, событие истории — return, иначе transfer.
func (uc *DeviceUseCase) Transfer(ctx context.Context, actor *audit.Actor, deviceID, warehouseID int64) (*dto.DeviceResponse, error) {
	d, err := uc.devices.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	w, err := uc.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("склад %d не найден: %w", warehouseID, domain.ErrNotFound)
	}

	wasOwned := d.OwnerID != nil
	fromLoc := uc.locationName(ctx, d.LocationID)
	changes := map[string]any{
		"warehouse_id": audit.Change{Old: derefID(d.WarehouseID), New: w.ID},
		"status":       audit.Change{Old: d.Status, New: entity.DeviceStatusInStock},
	}
	if wasOwned {
		changes["owner_id"] = audit.Change{Old: *d.OwnerID, New: nil}
	}

	now := time.Now().UTC()
	locID := w.LocationID
	d.WarehouseID = &w.ID
	d.OwnerID = nil
	d.LocationID = &locID
	d.Status = entity.DeviceStatusInStock
	d.UpdatedAt = now
	if err := uc.devices.Update(ctx, d); err != nil {
		return nil, err
	}

	event := entity.HistoryTransferred
	note := "Перемещён на склад: " + w.Name
	action := entity.ActionTransfer
	if wasOwned {
		event = entity.HistoryReturned
		note = "Возвращён на склад: " + w.Name
		action = entity.ActionReturn
	}
	if err := uc.history.Create(ctx, &entity.DeviceHistory{
		DeviceID:     d.ID,
		Event:        event,
		Note:         note,
		FromLocation: fromLoc,
		ToLocation:   uc.locationName(ctx, d.LocationID),
		CreatedAt:    now,
	}); err != nil {
		return nil, err
	}
	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     action,
		EntityType: entity.EntityDevice,
		EntityID:   &d.ID,
		EntityName: d.DisplayName(),
		Changes:    changes,
	}); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, d), nil
}

// History возвращает страницу истории девайса: события перемещений плюс
// записи audit-лога по этому девайсу.
func (uc *DeviceUseCase) History(ctx context.Context, id int64) (*dto.DeviceHistoryPageResponse, error) {
	d, err := uc.devices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}

	rows, err := uc.history.ListByDevice(ctx, id)
	if err != nil {
		return nil, err
	}
	audits, err := uc.audit.Query(ctx, repository.AuditFilter{
		EntityType: entity.EntityDevice.String(),
		EntityID:   id,
	})
	if err != nil {
		return nil, err
	}

	page := &dto.DeviceHistoryPageResponse{
		History: make([]dto.DeviceHistoryResponse, 0, len(rows)),
		Audit:   make([]dto.AuditLogResponse, 0, len(audits)),
	}
	for _, r := range rows {
		page.History = append(page.History, dto.DeviceHistoryResponse{
			ID:           r.ID,
			DeviceID:     r.DeviceID,
			Event:        r.Event,
			Note:         r.Note,
			FromLocation: r.FromLocation,
			ToLocation:   r.ToLocation,
			Actor:        r.Actor,
			CreatedAt:    r.CreatedAt,
		})
	}
	for _, a := range audits {
		page.Audit = append(page.Audit, *toAuditLogResponse(a))
	}
	return page, nil
}

// Delete удаляет девайс по двухуровневой политике. Зависимых записей,
// мешающих удалению, у девайса нет.
func (uc *DeviceUseCase) Delete(ctx context.Context, actor *audit.Actor, id int64) (deletion.Result, error) {
	d, err := uc.devices.GetByID(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if d == nil {
		return deletion.Result{}, domain.ErrNotFound
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{
		Type: entity.EntityDevice,
		ID:   d.ID,
		Name: d.DisplayName(),
	})
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (uc *DeviceUseCase) locationName(ctx context.Context, id *int64) string {
	if id == nil {
		return ""
	}
	loc, err := uc.locations.GetByID(ctx, *id)
	if err != nil || loc == nil {
		return ""
	}
	return loc.Name
}

// toResponse дополняет девайс именами связанных записей для ответа.
func (uc *DeviceUseCase) toResponse(ctx context.Context, d *entity.Device) *dto.DeviceResponse {
	details := &entity.DeviceDetails{Device: *d}
	if dt, err := uc.types.GetByID(ctx, d.TypeID); err == nil && dt != nil {
		details.TypeName = dt.Name
	}
	if d.WarehouseID != nil {
		if w, err := uc.warehouses.GetByID(ctx, *d.WarehouseID); err == nil && w != nil {
			details.WarehouseName = w.Name
		}
	}
	if d.OwnerID != nil {
		if e, err := uc.employees.GetByID(ctx, *d.OwnerID); err == nil && e != nil {
			details.OwnerName = e.FullName()
		}
	}
	details.LocationName = uc.locationName(ctx, d.LocationID)
	return toDeviceDetailsResponse(details)
}

func toDeviceDetailsResponse(d *entity.DeviceDetails) *dto.DeviceResponse {
	return &dto.DeviceResponse{
		ID:              d.ID,
		InventoryNumber: d.InventoryNumber,
		Model:           d.Model,
		SerialNumber:    d.SerialNumber,
		TypeID:          d.TypeID,
		TypeName:        d.TypeName,
		WarehouseID:     d.WarehouseID,
		WarehouseName:   d.WarehouseName,
		LocationID:      d.LocationID,
		LocationName:    d.LocationName,
		OwnerID:         d.OwnerID,
		OwnerName:       d.OwnerName,
		Status:          d.Status,
		PurchasePrice:   d.PurchasePrice,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		DeletedAt:       d.DeletedAt,
	}
}

func derefID(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func toAuditLogResponse(a *entity.AuditLog) *dto.AuditLogResponse {
	return &dto.AuditLogResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		UserEmail:  a.UserEmail,
		Action:     string(a.Action),
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		EntityName: a.EntityName,
		Changes:    a.Changes,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
		CreatedAt:  a.CreatedAt,
	}
}
