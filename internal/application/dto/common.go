package dto

// ErrorResponse тело HTTP-ошибки.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse тело успешного ответа с человекочитаемым сообщением
// (удаление, восстановление, смена роли).
type MessageResponse struct {
	Message string `json:"message"`
}
