package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/usecase"
)

// DashboardHandler отдаёт сводку по парку девайсов.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler конструирует handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Сводка: активные девайсы и счётчики по статусам
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
