package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normName приводит введённое пользователем имя к NFC и убирает краевые
// пробелы. Кириллица с комбинируемыми диакритиками (й, ё) иначе даёт
// ложные «дубликаты» при сравнении.
func normName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normEmail — нижний регистр + NFC.
func normEmail(s string) string {
	return strings.ToLower(normName(s))
}

// normTelegram приводит ник к каноничному виду: нижний регистр, ведущий @.
// Пустая строка остаётся пустой (ник не указан).
func normTelegram(s string) string {
	s = strings.ToLower(normName(s))
	if s == "" {
		return ""
	}
	return "@" + strings.TrimPrefix(s, "@")
}
