package usecase

import (
	"context"
	"time"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/deletion"
	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

// TrashUseCase — раздел «Удалено»: просмотр мягко удалённых записей всех
// типов, восстановление и окончательное удаление. Обе операции отказывают
// записям, которые не помечены удалёнными.
type TrashUseCase struct {
	devices    repository.DeviceRepository
	employees  repository.EmployeeRepository
	warehouses repository.WarehouseRepository
	locations  repository.LocationRepository
	types      repository.DeviceTypeRepository
	users      repository.UserRepository
	deletion   *deletion.Service
}

// NewTrashUseCase конструирует usecase.
func NewTrashUseCase(
	devices repository.DeviceRepository,
	employees repository.EmployeeRepository,
	warehouses repository.WarehouseRepository,
	locations repository.LocationRepository,
	types repository.DeviceTypeRepository,
	users repository.UserRepository,
	deletionSvc *deletion.Service,
) *TrashUseCase {
	return &TrashUseCase{
		devices:    devices,
		employees:  employees,
		warehouses: warehouses,
		locations:  locations,
		types:      types,
		users:      users,
		deletion:   deletionSvc,
	}
}

// List возвращает содержимое раздела «Удалено» по всем типам сущностей.
func (uc *TrashUseCase) List(ctx context.Context) (*dto.TrashListResponse, error) {
	out := &dto.TrashListResponse{
		Devices:     []dto.TrashItemResponse{},
		Employees:   []dto.TrashItemResponse{},
		Warehouses:  []dto.TrashItemResponse{},
		Locations:   []dto.TrashItemResponse{},
		DeviceTypes: []dto.TrashItemResponse{},
		Users:       []dto.TrashItemResponse{},
	}

	devices, err := uc.devices.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		out.Devices = append(out.Devices, trashItem(entity.EntityDevice, d.ID, d.DisplayName(), d.DeletedAt))
	}

	employees, err := uc.employees.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range employees {
		out.Employees = append(out.Employees, trashItem(entity.EntityEmployee, e.ID, e.DisplayName(), e.DeletedAt))
	}

	warehouses, err := uc.warehouses.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range warehouses {
		out.Warehouses = append(out.Warehouses, trashItem(entity.EntityWarehouse, w.ID, w.DisplayName(), w.DeletedAt))
	}

	locations, err := uc.locations.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range locations {
		out.Locations = append(out.Locations, trashItem(entity.EntityLocation, l.ID, l.DisplayName(), l.DeletedAt))
	}

	types, err := uc.types.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		out.DeviceTypes = append(out.DeviceTypes, trashItem(entity.EntityDeviceType, t.ID, t.DisplayName(), t.DeletedAt))
	}

	users, err := uc.users.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out.Users = append(out.Users, trashItem(entity.EntityUser, u.ID, u.DisplayName(), u.DeletedAt))
	}

	out.Total = len(out.Devices) + len(out.Employees) + len(out.Warehouses) +
		len(out.Locations) + len(out.DeviceTypes) + len(out.Users)
	return out, nil
}

// Restore восстанавливает мягко удалённую запись. Запись без отметки
// deleted_at восстановить нельзя.
func (uc *TrashUseCase) Restore(ctx context.Context, actor *audit.Actor, t entity.EntityType, id int64) (deletion.Result, error) {
	name, wasDeleted, err := uc.lookup(ctx, t, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if !wasDeleted {
		return deletion.Result{}, domain.ErrNotDeleted
	}

	return uc.deletion.Restore(ctx, actor, deletion.Target{Type: t, ID: id, Name: name})
}

// PermanentDelete физически удаляет мягко удалённую запись — супер-админский
// хвост двухуровневой политики. Активную запись так удалить нельзя.
func (uc *TrashUseCase) PermanentDelete(ctx context.Context, actor *audit.Actor, t entity.EntityType, id int64) (deletion.Result, error) {
	name, wasDeleted, err := uc.lookup(ctx, t, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if !wasDeleted {
		return deletion.Result{}, domain.ErrNotDeleted
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{Type: t, ID: id, Name: name})
}

// lookup возвращает отображаемое имя записи и признак мягкого удаления.
func (uc *TrashUseCase) lookup(ctx context.Context, t entity.EntityType, id int64) (name string, wasDeleted bool, err error) {
	switch t {
	case entity.EntityDevice:
		d, err := uc.devices.GetByID(ctx, id)
		if err != nil || d == nil {
			return "", false, orNotFound(err)
		}
		return d.DisplayName(), d.DeletedAt != nil, nil
	case entity.EntityEmployee:
		e, err := uc.employees.GetByID(ctx, id)
		if err != nil || e == nil {
			return "", false, orNotFound(err)
		}
		return e.DisplayName(), e.DeletedAt != nil, nil
	case entity.EntityWarehouse:
		w, err := uc.warehouses.GetByID(ctx, id)
		if err != nil || w == nil {
			return "", false, orNotFound(err)
		}
		return w.DisplayName(), w.DeletedAt != nil, nil
	case entity.EntityLocation:
		l, err := uc.locations.GetByID(ctx, id)
		if err != nil || l == nil {
			return "", false, orNotFound(err)
		}
		return l.DisplayName(), l.DeletedAt != nil, nil
	case entity.EntityDeviceType:
		dt, err := uc.types.GetByID(ctx, id)
		if err != nil || dt == nil {
			return "", false, orNotFound(err)
		}
		return dt.DisplayName(), dt.DeletedAt != nil, nil
	case entity.EntityUser:
		u, err := uc.users.GetByID(ctx, id)
		if err != nil || u == nil {
			return "", false, orNotFound(err)
		}
		return u.DisplayName(), u.DeletedAt != nil, nil
	default:
		return "", false, domain.ErrUnknownEntityType
	}
}

func orNotFound(err error) error {
	if err != nil {
		return err
	}
	return domain.ErrNotFound
}

func trashItem(t entity.EntityType, id int64, name string, deletedAt *time.Time) dto.TrashItemResponse {
	item := dto.TrashItemResponse{EntityType: t.String(), ID: id, Name: name}
	if deletedAt != nil {
		item.DeletedAt = *deletedAt
	}
	return item
}
