package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/report"
)

// ReportHandler отдаёт PDF-отчёты.
type ReportHandler struct {
	uc *report.Usecase
}

// NewReportHandler конструирует handler.
func NewReportHandler(uc *report.Usecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// DevicesPDF godoc
// @Summary      PDF-отчёт по активным девайсам
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/devices [get]
func (h *ReportHandler) DevicesPDF(c *fiber.Ctx) error {
	data, err := h.uc.DeviceReportPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="devices.pdf"`)
	return c.Send(data)
}
