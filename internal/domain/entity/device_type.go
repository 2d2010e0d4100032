package entity

import (
	"strconv"
	"time"
)

// DeviceType — тип девайса (ноутбук, монитор и т.д.).
type DeviceType struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// DisplayName возвращает человекочитаемое имя для аудита и уведомлений.
func (t *DeviceType) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return strconv.FormatInt(t.ID, 10)
}

// DeviceTypeWithCount — тип девайса вместе с числом активных девайсов.
type DeviceTypeWithCount struct {
	DeviceType
	DeviceCount int
}
