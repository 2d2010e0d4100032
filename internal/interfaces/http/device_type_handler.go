package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/application/usecase"
)

// DeviceTypeHandler обрабатывает HTTP-запросы по типам девайсов.
type DeviceTypeHandler struct {
	uc *usecase.DeviceTypeUseCase
}

// NewDeviceTypeHandler конструирует handler.
func NewDeviceTypeHandler(uc *usecase.DeviceTypeUseCase) *DeviceTypeHandler {
	return &DeviceTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Создать тип девайса
// @Tags         device-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeviceTypeRequest  true  "Имя типа"
// @Success      201   {object}  dto.DeviceTypeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/device-types [post]
func (h *DeviceTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.DeviceTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "невалидное тело запроса"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name обязателен"})
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Список активных типов с числом девайсов
// @Tags         device-types
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeviceTypeResponse
// @Router       /api/device-types [get]
func (h *DeviceTypeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Тип девайса по ID
// @Tags         device-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID типа"
// @Success      200  {object}  dto.DeviceTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/device-types/{id} [get]
func (h *DeviceTypeHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "тип девайса не найден"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Переименовать тип девайса
// @Tags         device-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID типа"
// @Param        body  body  dto.DeviceTypeRequest  true  "Новое имя"
// @Success      200   {object}  dto.DeviceTypeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/device-types/{id} [put]
func (h *DeviceTypeHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.DeviceTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "невалидное тело запроса"})
	}
	out, err := h.uc.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "тип девайса не найден"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Удалить тип девайса (отказ, пока есть девайсы этого типа)
// @Tags         device-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID типа"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /api/device-types/{id} [delete]
func (h *DeviceTypeHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.uc.Delete(c.Context(), actorFrom(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, result)
}
