package domain

import "errors"

// Ошибки домена (без внешних зависимостей).
var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrUserNotFound      = errors.New("пользователь не найден")
	ErrDuplicate         = errors.New("запись с такими данными уже существует")
	ErrInvalidInput      = errors.New("некорректные данные")
	ErrUnauthorized      = errors.New("требуется авторизация")
	ErrForbidden         = errors.New("доступ запрещён")
	ErrSelfDelete        = errors.New("нельзя удалить самого себя")
	ErrNotDeleted        = errors.New("объект не был удалён")
	ErrStillReferenced   = errors.New("объект всё ещё используется другими записями")
	ErrUnknownEntityType = errors.New("неизвестный тип объекта")
)
