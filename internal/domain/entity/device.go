package entity

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Статусы девайса.
const (
	DeviceStatusInStock  = "in_stock"
	DeviceStatusAssigned = "assigned"
	DeviceStatusRetired  = "retired"
)

// Device — учётная единица инвентаря. Девайс либо лежит на складе
// (WarehouseID), либо выдан сотруднику (OwnerID) — но не то и другое сразу.
// Локация выводится из склада или сотрудника при перемещении.
type Device struct {
	ID              int64
	InventoryNumber string
	Model           string
	SerialNumber    string
	TypeID          int64
	WarehouseID     *int64
	LocationID      *int64
	OwnerID         *int64
	Status          string
	PurchasePrice   decimal.NullDecimal // цена закупки, NUMERIC в БД
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// DisplayName возвращает инвентарный номер, а при его отсутствии — ID.
func (d *Device) DisplayName() string {
	if d.InventoryNumber != "" {
		return d.InventoryNumber
	}
	return strconv.FormatInt(d.ID, 10)
}

// DeviceDetails — девайс вместе с именами связанных записей (для списков и отчётов).
type DeviceDetails struct {
	Device
	TypeName      string
	WarehouseName string
	LocationName  string
	OwnerName     string
}
