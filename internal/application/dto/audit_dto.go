package dto

import "time"

// AuditQueryRequest фильтры выборки audit-лога.
type AuditQueryRequest struct {
	EntityType string `query:"entity_type"`
	EntityID   int64  `query:"entity_id"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// AuditLogResponse одна запись audit-лога.
type AuditLogResponse struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	UserEmail  string    `json:"user_email,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   *int64    `json:"entity_id"`
	EntityName string    `json:"entity_name,omitempty"`
	Changes    string    `json:"changes,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
