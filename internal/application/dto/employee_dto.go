package dto

import "time"

// CreateEmployeeRequest вход для создания сотрудника.
// LocationName — имя локации; локация создаётся на лету, если такой ещё нет.
type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name" validate:"required,min=1,max=100"`
	LastName     string `json:"last_name" validate:"required,min=1,max=100"`
	MiddleName   string `json:"middle_name" validate:"omitempty,max=100"`
	Position     string `json:"position" validate:"omitempty,max=200"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone" validate:"omitempty,max=50"`
	Telegram     string `json:"telegram" validate:"omitempty,max=100"`
	LocationName string `json:"location_name" validate:"required,min=1,max=200"`
}

// UpdateEmployeeRequest вход для обновления сотрудника.
type UpdateEmployeeRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName     *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	MiddleName   *string `json:"middle_name" validate:"omitempty,max=100"`
	Position     *string `json:"position" validate:"omitempty,max=200"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone" validate:"omitempty,max=50"`
	Telegram     *string `json:"telegram" validate:"omitempty,max=100"`
	LocationName *string `json:"location_name" validate:"omitempty,max=200"`
}

// EmployeeResponse выход сотрудника.
type EmployeeResponse struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	MiddleName   string     `json:"middle_name"`
	FullName     string     `json:"full_name"`
	Position     string     `json:"position"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Telegram     string     `json:"telegram"`
	LocationID   int64      `json:"location_id"`
	LocationName string     `json:"location_name,omitempty"`
	DeviceCount  int        `json:"device_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
