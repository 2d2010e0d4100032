package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/application/usecase"
)

// DeviceHandler обрабатывает HTTP-запросы жизненного цикла девайса.
type DeviceHandler struct {
	uc *usecase.DeviceUseCase
}

// NewDeviceHandler конструирует handler.
func NewDeviceHandler(uc *usecase.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// Create godoc
// @Summary      Создать девайс
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeviceRequest  true  "Данные девайса"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "невалидное тело запроса"})
	}
	if in.InventoryNumber == "" || in.TypeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inventory_number и type_id обязательны"})
	}
	out, err := h.uc.Create(c.Context(), actorFrom(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Список активных девайсов
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeviceResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Девайс по ID
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID девайса"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [get]
func (h *DeviceHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "девайс не найден"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Обновить поля девайса
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID девайса"
// @Param        body  body  dto.UpdateDeviceRequest  true  "Изменяемые поля"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [put]
func (h *DeviceHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateDeviceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "невалидное тело запроса"})
	}
	out, err := h.uc.Update(c.Context(), actorFrom(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "девайс не найден"})
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Выдать девайс сотруднику
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID девайса"
// @Param        body  body  dto.AssignDeviceRequest  true  "ID сотрудника"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/assign [post]
func (h *DeviceHandler) Assign(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AssignDeviceRequest
	if err := c.BodyParser(&in); err != nil || in.EmployeeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "employee_id обязателен"})
	}
	out, err := h.uc.Assign(c.Context(), actorFrom(c), id, in.EmployeeID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "девайс не найден"})
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Переместить девайс на склад
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID девайса"
// @Param        body  body  dto.TransferDeviceRequest  true  "ID склада"
// @Success      200   {object}  dto.DeviceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/transfer [post]
func (h *DeviceHandler) Transfer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TransferDeviceRequest
	if err := c.BodyParser(&in); err != nil || in.WarehouseID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id обязателен"})
	}
	out, err := h.uc.Transfer(c.Context(), actorFrom(c), id, in.WarehouseID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "девайс не найден"})
	}
	return c.JSON(out)
}

// History godoc
// @Summary      История девайса
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID девайса"
// @Success      200  {object}  dto.DeviceHistoryPageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id}/history [get]
func (h *DeviceHandler) History(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.History(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "девайс не найден"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Удалить девайс (мягко или физически, по роли)
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID девайса"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{id} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
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
