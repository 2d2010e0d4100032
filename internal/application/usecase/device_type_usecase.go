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

// DeviceTypeUseCase — CRUD типов девайсов. Тип с активными девайсами не удаляется.
type DeviceTypeUseCase struct {
	types    repository.DeviceTypeRepository
	devices  repository.DeviceRepository
	deletion *deletion.Service
	audit    *audit.Service
}

// NewDeviceTypeUseCase конструирует usecase.
func NewDeviceTypeUseCase(
	types repository.DeviceTypeRepository,
	devices repository.DeviceRepository,
	deletionSvc *deletion.Service,
	auditSvc *audit.Service,
) *DeviceTypeUseCase {
	return &DeviceTypeUseCase{types: types, devices: devices, deletion: deletionSvc, audit: auditSvc}
}

// Create создаёт тип девайса.
func (uc *DeviceTypeUseCase) Create(ctx context.Context, actor *audit.Actor, in dto.DeviceTypeRequest) (*dto.DeviceTypeResponse, error) {
	now := time.Now().UTC()
	dt := &entity.DeviceType{Name: normName(in.Name), CreatedAt: now, UpdatedAt: now}
	if dt.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.types.Create(ctx, dt); err != nil {
		return nil, err
	}

	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityDeviceType,
		EntityID:   &dt.ID,
		EntityName: dt.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return toDeviceTypeResponse(dt, 0), nil
}

// GetByID возвращает тип девайса или nil, если такого нет.
func (uc *DeviceTypeUseCase) GetByID(ctx context.Context, id int64) (*dto.DeviceTypeResponse, error) {
	dt, err := uc.types.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, nil
	}
	count, err := uc.devices.CountActiveByType(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeviceTypeResponse(dt, count), nil
}

// List возвращает активные типы с числом девайсов каждого типа.
func (uc *DeviceTypeUseCase) List(ctx context.Context) ([]dto.DeviceTypeResponse, error) {
	types, err := uc.types.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeviceTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, *toDeviceTypeResponse(&t.DeviceType, t.DeviceCount))
	}
	return out, nil
}

// Update переименовывает тип девайса.
func (uc *DeviceTypeUseCase) Update(ctx context.Context, actor *audit.Actor, id int64, in dto.DeviceTypeRequest) (*dto.DeviceTypeResponse, error) {
	dt, err := uc.types.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dt == nil {
		return nil, nil
	}

	newName := normName(in.Name)
	if newName == "" {
		return nil, domain.ErrInvalidInput
	}
	changes := map[string]any{}
	if newName != dt.Name {
		changes["name"] = audit.Change{Old: dt.Name, New: newName}
		dt.Name = newName
	}
	dt.UpdatedAt = time.Now().UTC()
	if err := uc.types.Update(ctx, dt); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := uc.audit.Record(ctx, actor, audit.Entry{
			Action:     entity.ActionUpdate,
			EntityType: entity.EntityDeviceType,
			EntityID:   &dt.ID,
			EntityName: dt.DisplayName(),
			Changes:    changes,
		}); err != nil {
			return nil, err
		}
	}
	count, err := uc.devices.CountActiveByType(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDeviceTypeResponse(dt, count), nil
}

// Delete удаляет тип по двухуровневой политике. Guard: тип с активными
// девайсами не удаляется.
func (uc *DeviceTypeUseCase) Delete(ctx context.Context, actor *audit.Actor, id int64) (deletion.Result, error) {
	dt, err := uc.types.GetByID(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if dt == nil {
		return deletion.Result{}, domain.ErrNotFound
	}

	count, err := uc.devices.CountActiveByType(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if count > 0 {
		return deletion.Result{
			OK:      false,
			Message: fmt.Sprintf("Нельзя удалить тип девайса, пока к нему привязаны устройства (%d шт.)", count),
		}, nil
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{
		Type: entity.EntityDeviceType,
		ID:   dt.ID,
		Name: dt.DisplayName(),
	})
}

func toDeviceTypeResponse(t *entity.DeviceType, count int) *dto.DeviceTypeResponse {
	return &dto.DeviceTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		DeviceCount: count,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		DeletedAt:   t.DeletedAt,
	}
}
