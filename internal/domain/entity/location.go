package entity

import (
	"strconv"
	"time"
)

// Location — локация (город), где живут сотрудники и стоят склады.
type Location struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // nil — запись активна
}

// DisplayName возвращает человекочитаемое имя для аудита и уведомлений.
func (l *Location) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return strconv.FormatInt(l.ID, 10)
}
