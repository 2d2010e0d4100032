package dto

import "time"

// ── Локации ───────────────────────────────────────────────────────────────────

// LocationRequest вход для создания/обновления локации.
type LocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// LocationResponse выход локации.
type LocationResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ── Склады ────────────────────────────────────────────────────────────────────

// WarehouseRequest вход для создания/обновления склада.
// LocationName — имя локации; локация создаётся на лету, если такой ещё нет.
type WarehouseRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Address      string `json:"address" validate:"omitempty,max=500"`
	LocationName string `json:"location_name" validate:"required,min=1,max=200"`
}

// WarehouseResponse выход склада с числом активных девайсов.
type WarehouseResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	LocationID   int64      `json:"location_id"`
	LocationName string     `json:"location_name,omitempty"`
	DeviceCount  int        `json:"device_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// ── Типы девайсов ─────────────────────────────────────────────────────────────

// DeviceTypeRequest вход для создания/обновления типа девайса.
type DeviceTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// DeviceTypeResponse выход типа девайса с числом активных девайсов.
type DeviceTypeResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	DeviceCount int        `json:"device_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
