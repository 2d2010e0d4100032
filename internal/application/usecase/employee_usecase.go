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

// EmployeeUseCase — CRUD сотрудников: нормализация ввода, проверки дубликатов
// по четырём осям (ФИО, email, телефон, telegram), локация по имени с
// созданием на лету. Сотрудник с девайсами на руках не удаляется.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	devices   repository.DeviceRepository
	locations *LocationUseCase
	deletion  *deletion.Service
	audit     *audit.Service
}

// NewEmployeeUseCase конструирует usecase.
func NewEmployeeUseCase(
	employees repository.EmployeeRepository,
	devices repository.DeviceRepository,
	locations *LocationUseCase,
	deletionSvc *deletion.Service,
	auditSvc *audit.Service,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		employees: employees,
		devices:   devices,
		locations: locations,
		deletion:  deletionSvc,
		audit:     auditSvc,
	}
}

// Create создаёт сотрудника после нормализации и проверок дубликатов.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor *audit.Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e := &entity.Employee{
		FirstName:  normName(in.FirstName),
		LastName:   normName(in.LastName),
		MiddleName: normName(in.MiddleName),
		Position:   normName(in.Position),
		Email:      normEmail(in.Email),
		Phone:      normName(in.Phone),
		Telegram:   normTelegram(in.Telegram),
	}
	if e.FirstName == "" || e.LastName == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.checkDuplicates(ctx, e, 0); err != nil {
		return nil, err
	}

	loc, err := uc.locations.GetOrCreate(ctx, actor, in.LocationName)
	if err != nil {
		return nil, err
	}
	e.LocationID = loc.ID

	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := uc.employees.Create(ctx, e); err != nil {
		return nil, err
	}

	if err := uc.audit.Record(ctx, actor, audit.Entry{
		Action:     entity.ActionCreate,
		EntityType: entity.EntityEmployee,
		EntityID:   &e.ID,
		EntityName: e.DisplayName(),
	}); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e, loc.Name, 0), nil
}

// GetByID возвращает сотрудника или nil, если такого нет.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	e, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	count, err := uc.devices.CountActiveByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	locName := ""
	if loc, err := uc.locations.GetByID(ctx, e.LocationID); err == nil && loc != nil {
		locName = loc.Name
	}
	return toEmployeeResponse(e, locName, count), nil
}

// List возвращает активных сотрудников с числом девайсов на руках.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(&e.Employee, e.LocationName, e.DeviceCount))
	}
	return out, nil
}

// Update изменяет сотрудника; изменённые поля попадают в аудит.
func (uc *EmployeeUseCase) Update(ctx context.Context, actor *audit.Actor, id int64, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}

	changes := map[string]any{}
	setStr := func(field string, dst *string, raw *string, norm func(string) string) {
		if raw == nil {
			return
		}
		v := norm(*raw)
		if v != *dst {
			changes[field] = audit.Change{Old: *dst, New: v}
			*dst = v
		}
	}
	setStr("first_name", &e.FirstName, in.FirstName, normName)
	setStr("last_name", &e.LastName, in.LastName, normName)
	setStr("middle_name", &e.MiddleName, in.MiddleName, normName)
	setStr("position", &e.Position, in.Position, normName)
	setStr("email", &e.Email, in.Email, normEmail)
	setStr("phone", &e.Phone, in.Phone, normName)
	setStr("telegram", &e.Telegram, in.Telegram, normTelegram)

	if e.FirstName == "" || e.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkDuplicates(ctx, e, e.ID); err != nil {
		return nil, err
	}

	locName := ""
	if in.LocationName != nil {
		loc, err := uc.locations.GetOrCreate(ctx, actor, *in.LocationName)
		if err != nil {
			return nil, err
		}
		if loc.ID != e.LocationID {
			changes["location_id"] = audit.Change{Old: e.LocationID, New: loc.ID}
			e.LocationID = loc.ID
		}
		locName = loc.Name
	} else if loc, err := uc.locations.GetByID(ctx, e.LocationID); err == nil && loc != nil {
		locName = loc.Name
	}

	e.UpdatedAt = time.Now().UTC()
	if err := uc.employees.Update(ctx, e); err != nil {
		return nil, err
	}

	if len(changes) > 0 {
		if err := uc.audit.Record(ctx, actor, audit.Entry{
			Action:     entity.ActionUpdate,
			EntityType: entity.EntityEmployee,
			EntityID:   &e.ID,
			EntityName: e.DisplayName(),
			Changes:    changes,
		}); err != nil {
			return nil, err
		}
	}
	count, err := uc.devices.CountActiveByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEmployeeResponse(e, locName, count), nil
}

// Delete удаляет сотрудника по двухуровневой политике. Guard: сотрудник с
// девайсами на руках не удаляется, отказ не аудируется.
func (uc *EmployeeUseCase) Delete(ctx context.Context, actor *audit.Actor, id int64) (deletion.Result, error) {
	e, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if e == nil {
		return deletion.Result{}, domain.ErrNotFound
	}

	count, err := uc.devices.CountActiveByOwner(ctx, id)
	if err != nil {
		return deletion.Result{}, err
	}
	if count > 0 {
		return deletion.Result{
			OK:      false,
			Message: fmt.Sprintf("Нельзя удалить сотрудника, пока за ним закреплены устройства (%d шт.)", count),
		}, nil
	}

	return uc.deletion.Delete(ctx, actor, deletion.Target{
		Type: entity.EntityEmployee,
		ID:   e.ID,
		Name: e.DisplayName(),
	})
}

// checkDuplicates проверяет четыре оси уникальности; excludeID исключает
// самого сотрудника при обновлении.
func (uc *EmployeeUseCase) checkDuplicates(ctx context.Context, e *entity.Employee, excludeID int64) error {
	exists, err := uc.employees.ExistsName(ctx, e.FirstName, e.LastName, e.MiddleName, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("сотрудник с таким ФИО уже существует: %w", domain.ErrDuplicate)
	}
	if e.Email != "" {
		if exists, err = uc.employees.ExistsEmail(ctx, e.Email, excludeID); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("сотрудник с таким email уже существует: %w", domain.ErrDuplicate)
		}
	}
	if e.Phone != "" {
		if exists, err = uc.employees.ExistsPhone(ctx, e.Phone, excludeID); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("сотрудник с таким телефоном уже существует: %w", domain.ErrDuplicate)
		}
	}
	if e.Telegram != "" {
		if exists, err = uc.employees.ExistsTelegram(ctx, e.Telegram, excludeID); err != nil {
			return err
		} else if exists {
			return fmt.Errorf("сотрудник с таким telegram уже существует: %w", domain.ErrDuplicate)
		}
	}
	return nil
}

func toEmployeeResponse(e *entity.Employee, locationName string, count int) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		MiddleName:   e.MiddleName,
		FullName:     e.FullName(),
		Position:     e.Position,
		Email:        e.Email,
		Phone:        e.Phone,
		Telegram:     e.Telegram,
		LocationID:   e.LocationID,
		LocationName: locationName,
		DeviceCount:  count,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		DeletedAt:    e.DeletedAt,
	}
}
