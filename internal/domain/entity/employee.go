package entity

import (
	"strconv"
	"strings"
	"time"
)

// Employee — сотрудник компании, владелец выданных девайсов.
type Employee struct {
	ID         int64
	FirstName  string
	LastName   string
	MiddleName string // пустая строка — отчества нет
	Position   string
	Email      string
	Phone      string
	Telegram   string // с ведущим @, пустая строка — не указан
	LocationID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// FullName собирает полное ФИО: фамилия, имя, отчество (если есть).
func (e *Employee) FullName() string {
	parts := []string{e.LastName, e.FirstName}
	if e.MiddleName != "" {
		parts = append(parts, e.MiddleName)
	}
	return strings.Join(parts, " ")
}

// DisplayName возвращает человекочитаемое имя для аудита и уведомлений.
func (e *Employee) DisplayName() string {
	if name := e.FullName(); strings.TrimSpace(name) != "" {
		return name
	}
	return strconv.FormatInt(e.ID, 10)
}

// EmployeeWithCount — сотрудник вместе с числом активных девайсов на руках.
type EmployeeWithCount struct {
	Employee
	LocationName string
	DeviceCount  int
}
