package usecase

import (
	"context"

	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

// DashboardUseCase — сводка по парку девайсов для главной страницы.
type DashboardUseCase struct {
	devices repository.DeviceRepository
}

// NewDashboardUseCase конструирует usecase.
func NewDashboardUseCase(devices repository.DeviceRepository) *DashboardUseCase {
	return &DashboardUseCase{devices: devices}
}

// Summary возвращает активные девайсы с именами связанных записей и
// счётчики по статусам.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	devices, err := uc.devices.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := uc.devices.CountActiveByStatus(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		Devices:        make([]dto.DeviceResponse, 0, len(devices)),
		TotalDevices:   len(devices),
		CountsByStatus: counts,
	}
	for _, d := range devices {
		out.Devices = append(out.Devices, *toDeviceDetailsResponse(d))
	}
	return out, nil
}
