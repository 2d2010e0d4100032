package entity

import "time"

// События истории девайса.
const (
	HistoryCreated     = "created"
	HistoryUpdated     = "updated"
	HistoryAssigned    = "assigned"
	HistoryReturned    = "returned"
	HistoryTransferred = "transferred"
	HistoryRetired     = "retired"
	HistoryDeleted     = "deleted"
)

// DeviceHistory — запись истории перемещений и изменений девайса.
type DeviceHistory struct {
	ID           int64
	DeviceID     int64
	Event        string
	Note         string
	FromLocation string
	ToLocation   string
	Actor        string // ФИО сотрудника-владельца на момент события
	CreatedAt    time.Time
}
