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

// WarehouseUseCase — CRUD складов. Локация склада задаётся именем и создаётся
// на лету; склад с активными девайсами не удаляется.
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
	devices    repository.DeviceRepository
	locations  *LocationUseCase
	deletion   *deletion.Service
	audit      *audit.Service
}

// NewWarehouseUseCase конструирует usecase.
func NewWarehouseUseCase(
	warehouses repository.WarehouseRepository,
	devices repository.DeviceRepository,
	locations *LocationUseCase,
	deletionSvc *deletion.Service,
	auditSvc *audit.Service,
) *WarehouseUseCase {
	return &WarehouseUseCase{
		warehouses: warehouses,
		devices:    devices,
		locations:  locations,
		deletion:   deletionSvc,
		audit:      auditSvc,
	}
}

// Create создаёт склад, при необходимости создавая его локацию.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor *audit.Actor, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	loc, err := uc.locations.GetOrCreate(ctx, actor, in.LocationName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	w := &entity.Warehouse{
		Name:       normName(in.Name),
		Address:    normName(in.Address),
		LocationID: loc.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if w.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.warehouses.Create(ctx, w); err != nil {
		return nil, err
	}

	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityWarehouse,
		EntityID:   &w.ID,
		EntityName: w.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w, loc.Name, 0), nil
}

// GetByID возвращает склад или nil, если такого нет.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id int64) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	count, err := uc.devices.CountActiveByWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	locName := ""
	if loc, err := uc.locations.GetByID(ctx, w.LocationID); err == nil && loc != nil {
		locName = loc.Name
	}
	return toWarehouseResponse(w, locName, count), nil
}

// List возвращает активные склады с числом активных девайсов на каждом.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	list, err := uc.warehouses.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *toWarehouseResponse(&w.Warehouse, w.LocationName, w.DeviceCount))
	}
	return out, nil
}

// Update изменяет склад; смена локации — по имени, с созданием на лету.
func (uc *WarehouseUseCase) Update(ctx context.Context, actor *audit.Actor, id int64, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}

	loc, err := uc.locations.GetOrCreate(ctx, actor, in.LocationName)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if newName := normName(in.Name); newName != "" && newName != w.Name {
		changes["name"] = audit.Change{Old: w.Name, New: newName}
		w.Name = newName
	}
	if newAddr := normName(in.Address); newAddr != w.Address {
		changes["address"] = audit.Change{Old: w.Address, New: newAddr}
		w.Address = newAddr
	}
	if loc.ID != w.LocationID {
		changes["location_id"] = audit.Change{Old: w.LocationID, New: loc.ID}
		w.LocationID = loc.ID
	}
	w.UpdatedAt = time.Now().UTC()
	if err := uc.warehouses.Update(ctx, w); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := uc.audit.Record(ctx, actor, audit.Entry{
			Action:     entity.ActionUpdate,
			EntityType: entity.EntityWarehouse,
			EntityID:   &w.ID,
			EntityName: w.DisplayName(),
			Changes:    changes,
		}); err != nil {
			return nil, err
		}
	}
	count, err := uc.devices.CountActiveByWarehouse(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(w, loc.Name, count), nil
}

// Delete удаляет склад по двухуровневой политике. Guard: склад с активными
// девайсами не удаляется, отказ не аудируется.
func (uc *WarehouseUseCase) Delete(ctx context.Context, actor *audit.Actor, id int64) (deletion.Result, error) {
	w, err := uc.warehouses.GetByID(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if w == nil {
		return deletion.Result{}, domain.ErrNotFound
	}

	count, err := uc.devices.CountActiveByWarehouse(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if count > 0 {
		return deletion.Result{
			OK:      false,
			Message: fmt.Sprintf("Нельзя удалить склад, пока к нему привязаны устройства (%d шт.)", count),
		}, nil
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{
		Type: entity.EntityWarehouse,
		ID:   w.ID,
		Name: w.DisplayName(),
	})
}

func toWarehouseResponse(w *entity.Warehouse, locationName string, count int) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:           w.ID,
		Name:         w.Name,
		Address:      w.Address,
		LocationID:   w.LocationID,
		LocationName: locationName,
		DeviceCount:  count,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
		DeletedAt:    w.DeletedAt,
	}
}
