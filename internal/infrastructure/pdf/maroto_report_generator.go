// Package pdf реализует генерацию PDF-отчёта по парку девайсов.
//
// Макет страницы A4 (альбомная):
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Название системы  │  Дата формирования              │
//	│  ──────────────────────────────────────────────────────────  │
//	│  ТАБЛИЦА: Инв.№ | Модель | Тип | Статус | Размещение | Цена  │
//	│  ──────────────────────────────────────────────────────────  │
//	│  ИТОГО: всего девайсов                                       │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreport "github.com/ittest-team/device-accounting/internal/application/report"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// ── Палитра ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreport.DevicePDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator реализует report.DevicePDFGenerator через Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator конструирует генератор.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDeviceReport формирует PDF и возвращает его байты.
func (g *MarotoReportGenerator) GenerateDeviceReport(
	_ context.Context,
	devices []*entity.DeviceDetails,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Отчёт по девайсам", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(devices) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(len(devices)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: генерация документа: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Секции ────────────────────────────────────────────────────────────────────

func headerRow(generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Device Accounting — отчёт по девайсам", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Сформирован: "+generatedAt.Format("02.01.2006 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Инв. номер", 2, align.Left),
		h("Модель", 2, align.Left),
		h("Тип", 2, align.Left),
		h("Статус", 1, align.Center),
		h("Размещение", 2, align.Left),
		h("Владелец", 2, align.Left),
		h("Цена", 1, align.Right),
	)
}

func tableRows(devices []*entity.DeviceDetails) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(devices))
	for _, d := range devices {
		price := ""
		if d.PurchasePrice.Valid {
			price = d.PurchasePrice.Decimal.StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			cell(d.InventoryNumber, 2, align.Left),
			cell(nonEmpty(d.Model, "—"), 2, align.Left),
			cell(nonEmpty(d.TypeName, "—"), 2, align.Left),
			cell(statusLabel(d.Status), 1, align.Center),
			cell(placement(d), 2, align.Left),
			cell(nonEmpty(d.OwnerName, "—"), 2, align.Left),
			cell(price, 1, align.Right),
		))
	}
	return result
}

func summaryRow(total int) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Всего девайсов: %d", total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func placement(d *entity.DeviceDetails) string {
	switch {
	case d.WarehouseName != "":
		return "Склад: " + d.WarehouseName
	case d.LocationName != "":
		return d.LocationName
	default:
		return "—"
	}
}

func statusLabel(status string) string {
	switch status {
	case entity.DeviceStatusInStock:
		return "На складе"
	case entity.DeviceStatusAssigned:
		return "Выдан"
	case entity.DeviceStatusRetired:
		return "Списан"
	default:
		return status
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
