package dto

// ErrorResponse задаёт стандартный формат ошибки.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse задаёт стандартный формат успешного ответа с данными.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
