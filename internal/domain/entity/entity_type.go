package entity

// EntityType — закрытое множество типов сущностей, участвующих в удалении и аудите.
// В памяти это перечисление; в строку оно превращается только на границе
// audit-лога и почтовых уведомлений, чтобы история переживала физическое
// удаление записей без «висячего» внешнего ключа.
type EntityType uint8

const (
	EntityDevice EntityType = iota + 1
	EntityEmployee
	EntityWarehouse
	EntityLocation
	EntityDeviceType
	EntityUser
)

// String возвращает тег типа для хранения в audit_logs.entity_type.
func (t EntityType) String() string {
	switch t {
	case EntityDevice:
		return "device"
	case EntityEmployee:
		return "employee"
	case EntityWarehouse:
		return "warehouse"
	case EntityLocation:
		return "location"
	case EntityDeviceType:
		return "device_type"
	case EntityUser:
		return "user"
	default:
		return "unknown"
	}
}

// Localized возвращает русское название типа для сообщений и писем.
func (t EntityType) Localized() string {
	switch t {
	case EntityDevice:
		return "Девайс"
	case EntityEmployee:
		return "Сотрудник"
	case EntityWarehouse:
		return "Склад"
	case EntityLocation:
		return "Локация"
	case EntityDeviceType:
		return "Тип девайса"
	case EntityUser:
		return "Пользователь"
	default:
		return "Объект"
	}
}

// ParseEntityType разбирает строковый тег (из URL или БД) в EntityType.
func ParseEntityType(s string) (EntityType, bool) {
	switch s {
	case "device":
		return EntityDevice, true
	case "employee":
		return EntityEmployee, true
	case "warehouse":
		return EntityWarehouse, true
	case "location":
		return EntityLocation, true
	case "device_type":
		return EntityDeviceType, true
	case "user":
		return EntityUser, true
	default:
		return 0, false
	}
}
