package dto

import "time"

// TrashItemResponse одна мягко удалённая запись в разделе «Удалено».
type TrashItemResponse struct {
	EntityType string    `json:"entity_type"`
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// TrashListResponse содержимое раздела «Удалено», сгруппированное по типу.
type TrashListResponse struct {
	Devices     []TrashItemResponse `json:"devices"`
	Employees   []TrashItemResponse `json:"employees"`
	Warehouses  []TrashItemResponse `json:"warehouses"`
	Locations   []TrashItemResponse `json:"locations"`
	DeviceTypes []TrashItemResponse `json:"device_types"`
	Users       []TrashItemResponse `json:"users"`
	Total       int                 `json:"total"`
}
