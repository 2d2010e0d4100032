// Package report собирает сводные отчёты по парку девайсов.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
	"github.com/ittest-team/device-accounting/pkg/logger"
)

// DevicePDFGenerator рисует PDF-документ по списку девайсов.
type DevicePDFGenerator interface {
	GenerateDeviceReport(ctx context.Context, devices []*entity.DeviceDetails, generatedAt time.Time) ([]byte, error)
}

// Usecase формирует отчёты.
type Usecase struct {
	devices repository.DeviceRepository
	pdf     DevicePDFGenerator
	log     *logger.Logger
}

// NewUsecase конструирует сервис отчётов.
func NewUsecase(devices repository.DeviceRepository, pdf DevicePDFGenerator, log *logger.Logger) *Usecase {
	return &Usecase{devices: devices, pdf: pdf, log: log}
}

// DeviceReportPDF выгружает все активные девайсы в PDF-таблицу.
func (u *Usecase) DeviceReportPDF(ctx context.Context) ([]byte, error) {
	devices, err := u.devices.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: список девайсов: %w", err)
	}

	data, err := u.pdf.GenerateDeviceReport(ctx, devices, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	u.log.Info().Int("devices", len(devices)).Int("bytes", len(data)).Msg("сформирован PDF-отчёт по девайсам")
	return data, nil
}
