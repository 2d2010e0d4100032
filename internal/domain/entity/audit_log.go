package entity

import "time"

// AuditAction — вид действия в audit-логе.
type AuditAction string

const (
	ActionCreate   AuditAction = "create"
	ActionUpdate   AuditAction = "update"
	ActionDelete   AuditAction = "delete"
	ActionRestore  AuditAction = "restore"
	ActionAssign   AuditAction = "assign"
	ActionReturn   AuditAction = "return"
	ActionTransfer AuditAction = "transfer"
)

// AuditLog — неизменяемая запись о действии пользователя. Создаётся один раз,
// никогда не обновляется и не удаляется приложением. EntityType хранится
// строкой, а EntityID допускает NULL, чтобы история была читаема и после
// физического удаления записи.
type AuditLog struct {
	ID         int64
	UserID     int64
	Action     AuditAction
	EntityType string
	EntityID   *int64
	EntityName string // снимок имени на момент действия
	Changes    string // JSON {field: {old, new}}, пустая строка — NULL в БД
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time

	// Заполняется join'ом при чтении, в таблице не хранится.
	UserEmail string
}
