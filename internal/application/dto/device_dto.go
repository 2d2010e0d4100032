package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeviceRequest вход для создания девайса.
type CreateDeviceRequest struct {
	InventoryNumber string              `json:"inventory_number" validate:"required,min=1,max=100"`
	Model           string              `json:"model" validate:"omitempty,max=200"`
	SerialNumber    string              `json:"serial_number" validate:"omitempty,max=200"`
	TypeID          int64               `json:"type_id" validate:"required"`
	WarehouseID     *int64              `json:"warehouse_id"`
	OwnerID         *int64              `json:"owner_id"`
	PurchasePrice   decimal.NullDecimal `json:"purchase_price"`
	Notes           string              `json:"notes"`
}

// UpdateDeviceRequest вход для обновления полей девайса. Поля-указатели:
// nil — не трогать, значение — записать. Перемещение на склад и выдача
// сотруднику идут отдельными операциями (Transfer/Assign).
type UpdateDeviceRequest struct {
	InventoryNumber *string              `json:"inventory_number" validate:"omitempty,min=1,max=100"`
	Model           *string              `json:"model" validate:"omitempty,max=200"`
	SerialNumber    *string              `json:"serial_number" validate:"omitempty,max=200"`
	TypeID          *int64               `json:"type_id"`
	Status          *string              `json:"status" validate:"omitempty,oneof=in_stock assigned retired"`
	PurchasePrice   *decimal.NullDecimal `json:"purchase_price"`
	Notes           *string              `json:"notes"`
}

// AssignDeviceRequest выдача девайса сотруднику.
type AssignDeviceRequest struct {
	EmployeeID int64 `json:"employee_id" validate:"required"`
}

// TransferDeviceRequest перемещение девайса на склад.
type TransferDeviceRequest struct {
	WarehouseID int64 `json:"warehouse_id" validate:"required"`
}

// DeviceResponse выход девайса с разыменованными связями.
type DeviceResponse struct {
	ID              int64               `json:"id"`
	InventoryNumber string              `json:"inventory_number"`
	Model           string              `json:"model"`
	SerialNumber    string              `json:"serial_number"`
	TypeID          int64               `json:"type_id"`
	TypeName        string              `json:"type_name,omitempty"`
	WarehouseID     *int64              `json:"warehouse_id"`
	WarehouseName   string              `json:"warehouse_name,omitempty"`
	LocationID      *int64              `json:"location_id"`
	LocationName    string              `json:"location_name,omitempty"`
	OwnerID         *int64              `json:"owner_id"`
	OwnerName       string              `json:"owner_name,omitempty"`
	Status          string              `json:"status"`
	PurchasePrice   decimal.NullDecimal `json:"purchase_price"`
	Notes           string              `json:"notes"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	DeletedAt       *time.Time          `json:"deleted_at,omitempty"`
}

// DeviceHistoryPageResponse страница истории девайса: события перемещений
// плюс записи audit-лога по этому девайсу.
type DeviceHistoryPageResponse struct {
	History []DeviceHistoryResponse `json:"history"`
	Audit   []AuditLogResponse      `json:"audit"`
}

// DeviceHistoryResponse одна запись истории девайса.
type DeviceHistoryResponse struct {
	ID           int64     `json:"id"`
	DeviceID     int64     `json:"device_id"`
	Event        string    `json:"event"`
	Note         string    `json:"note,omitempty"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Actor        string    `json:"actor,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
