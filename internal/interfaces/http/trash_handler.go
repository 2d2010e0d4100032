package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/usecase"
	"github.com/ittest-team/device-accounting/internal/domain"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
)

// TrashHandler обрабатывает раздел «Удалено» (доступно только супер-админу).
type TrashHandler struct {
	uc *usecase.TrashUseCase
}

// NewTrashHandler конструирует handler.
func NewTrashHandler(uc *usecase.TrashUseCase) *TrashHandler {
	return &TrashHandler{uc: uc}
}

// List godoc
// @Summary      Содержимое раздела «Удалено»
// @Tags         trash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TrashListResponse
// @Router       /api/trash [get]
func (h *TrashHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Восстановить мягко удалённую запись
// @Tags         trash
// @Security     Bearer
// @Produce      json
// @Param        entity_type  path  string  true  "Тип сущности"  Enums(device, employee, warehouse, location, device_type, user)
// @Param        id           path  int     true  "ID записи"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/trash/{entity_type}/{id}/restore [post]
func (h *TrashHandler) Restore(c *fiber.Ctx) error {
	t, id, err := trashParams(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.uc.Restore(c.Context(), actorFrom(c), t, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, result)
}

// PermanentDelete godoc
// @Summary      Окончательно удалить запись из раздела «Удалено»
// @Tags         trash
// @Security     Bearer
// @Produce      json
// @Param        entity_type  path  string  true  "Тип сущности"  Enums(device, employee, warehouse, location, device_type, user)
// @Param        id           path  int     true  "ID записи"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/trash/{entity_type}/{id} [delete]
func (h *TrashHandler) PermanentDelete(c *fiber.Ctx) error {
	t, id, err := trashParams(c)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.uc.PermanentDelete(c.Context(), actorFrom(c), t, id)
	if err != nil {
		return respondError(c, err)
	}
	return respondDeletion(c, result)
}

func trashParams(c *fiber.Ctx) (entity.EntityType, int64, error) {
	t, ok := entity.ParseEntityType(c.Params("entity_type"))
	if !ok {
		return 0, 0, domain.ErrUnknownEntityType
	}
	id, err := paramID(c)
	if err != nil {
		return 0, 0, err
	}
	return t, id, nil
}
