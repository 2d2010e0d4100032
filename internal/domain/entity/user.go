package entity

import (
	"strconv"
	"strings"
	"time"
)

// Role — роль пользователя системы.
type Role string

// Роли в порядке расширения прав.
const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid сообщает, известна ли роль.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// IsAdmin — админ или супер-админ.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin — единственная точка ветвления двухуровневого удаления:
// супер-админ удаляет физически, остальные — мягко.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

// User — учётная запись администратора системы.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt, в домене после сохранения только хэш
	FullName     string
	Phone        string
	Telegram     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// DisplayName возвращает ФИО, а при его отсутствии — ID.
func (u *User) DisplayName() string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return strconv.FormatInt(u.ID, 10)
}
