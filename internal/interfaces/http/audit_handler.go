package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ittest-team/device-accounting/internal/application/audit"
	"github.com/ittest-team/device-accounting/internal/application/dto"
	"github.com/ittest-team/device-accounting/internal/domain/entity"
	"github.com/ittest-team/device-accounting/internal/domain/repository"
)

// AuditHandler отдаёт журнал аудита (доступно только супер-админу).
type AuditHandler struct {
	svc *audit.Service
}

// NewAuditHandler конструирует handler.
func NewAuditHandler(svc *audit.Service) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// Query godoc
// @Summary      Журнал аудита
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        entity_type  query  string  false  "Фильтр по типу сущности"
// @Param        entity_id    query  int     false  "Фильтр по ID сущности"
// @Param        limit        query  int     false  "Предел выборки"  default(100)
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/audit [get]
func (h *AuditHandler) Query(c *fiber.Ctx) error {
	filter := repository.AuditFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   int64(c.QueryInt("entity_id", 0)),
		Limit:      c.QueryInt("limit", 0),
	}
	logs, err := h.svc.Query(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, auditLogResponse(l))
	}
	return c.JSON(out)
}

func auditLogResponse(a *entity.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		UserEmail:  a.UserEmail,
		Action:     string(a.Action),
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		EntityName: a.EntityName,
		Changes:    a.Changes,
		IPAddress:  a.IPAddress,
		UserAgent:  a.UserAgent,
		CreatedAt:  a.CreatedAt,
	}
}
