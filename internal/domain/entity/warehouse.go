package entity

import (
	"strconv"
	"time"
)

// Warehouse — склад, на котором хранятся девайсы. Всегда привязан к локации.
type Warehouse struct {
	ID         int64
	Name       string
	Address    string
	LocationID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// DisplayName возвращает человекочитаемое имя для аудита и уведомлений.
func (w *Warehouse) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return strconv.FormatInt(w.ID, 10)
}

// WarehouseWithCount — склад вместе с числом активных девайсов (для списков и guard-проверок).
type WarehouseWithCount struct {
	Warehouse
	LocationName string
	DeviceCount  int
}
