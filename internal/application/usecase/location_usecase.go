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

// LocationUseCase — CRUD локаций. Удаление охраняется: локация с активными
// девайсами или сотрудниками не удаляется.
type LocationUseCase struct {
	locations repository.LocationRepository
	devices   repository.DeviceRepository
	employees repository.EmployeeRepository
	deletion  *deletion.Service
	audit     *audit.Service
}

// NewLocationUseCase конструирует usecase.
func NewLocationUseCase(
	locations repository.LocationRepository,
	devices repository.DeviceRepository,
	employees repository.EmployeeRepository,
	deletionSvc *deletion.Service,
	auditSvc *audit.Service,
) *LocationUseCase {
	return &LocationUseCase{
		locations: locations,
		devices:   devices,
		employees: employees,
		deletion:  deletionSvc,
		audit:     auditSvc,
	}
}

// Create создаёт локацию.
func (uc *LocationUseCase) Create(ctx context.Context, actor *audit.Actor, in dto.LocationRequest) (*dto.LocationResponse, error) {
	now := time.Now().UTC()
	loc := &entity.Location{
		Name:      normName(in.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if loc.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.locations.Create(ctx, loc); err != nil {
		return nil, err
	}

	id := loc.ID
	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityLocation,
		EntityID:   &id,
		EntityName: loc.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetOrCreate возвращает активную локацию по имени, создавая её при отсутствии.
// Используется складами и сотрудниками, которые ссылаются на локацию по имени.
func (uc *LocationUseCase) GetOrCreate(ctx context.Context, actor *audit.Actor, name string) (*entity.Location, error) {
	name = normName(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locations.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		return loc, nil
	}

	now := time.Now().UTC()
	loc = &entity.Location{Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	id := loc.ID
	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityLocation,
		EntityID:   &id,
		EntityName: loc.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return loc, nil
}

// GetByID возвращает локацию или nil, если такой нет.
func (uc *LocationUseCase) GetByID(ctx context.Context, id int64) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return toLocationResponse(loc), nil
}

// List возвращает активные локации.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	locs, err := uc.locations.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// Update переименовывает локацию.
func (uc *LocationUseCase) Update(ctx context.Context, actor *audit.Actor, id int64, in dto.LocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}

	newName := normName(in.Name)
	if newName == "" {
		return nil, domain.ErrInvalidInput
	}
	changes := map[string]any{}
	if newName != loc.Name {
		changes["name"] = audit.Change{Old: loc.Name, New: newName}
		loc.Name = newName
	}
	loc.UpdatedAt = time.Now().UTC()
	if err := uc.locations.Update(ctx, loc); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := uc.audit.Record(ctx, actor, audit.Entry{
			Action:     entity.ActionUpdate,
			EntityType: entity.EntityLocation,
			EntityID:   &loc.ID,
			EntityName: loc.DisplayName(),
			Changes:    changes,
		}); err != nil {
			return nil, err
		}
	}
	return toLocationResponse(loc), nil
}

// Delete удаляет локацию по двухуровневой политике. Guard: локация с активными
// девайсами или сотрудниками не удаляется, аудит при отказе не пишется.
func (uc *LocationUseCase) Delete(ctx context.Context, actor *audit.Actor, id int64) (deletion.Result, error) {
	loc, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if loc == nil {
		return deletion.Result{}, domain.ErrNotFound
	}

	devCount, err := uc.devices.CountActiveByLocation(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	empCount, err := uc.employees.CountActiveByLocation(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if total := devCount + empCount; total > 0 {
		return deletion.Result{
			OK:      false,
			Message: fmt.Sprintf("Нельзя удалить локацию, пока к ней привязаны устройства или сотрудники (%d шт.)", total),
		}, nil
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{
		Type: entity.EntityLocation,
		ID:   loc.ID,
		Name: loc.DisplayName(),
	})
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		DeletedAt: l.DeletedAt,
	}
}
