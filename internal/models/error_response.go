package models

import "net/http"

type ErrorKind string // Категория ошибки

const (
	ValidationError   ErrorKind = "validation"   // Некорректные входные данные
	PreconditionError ErrorKind = "precondition" // Операция вне допустимой фазы
	ConflictError     ErrorKind = "conflict"     // Повторная подача, двойной выбор победителя
	NotFoundError     ErrorKind = "not_found"    // Тендер или предложение не найдены
	InternalError     ErrorKind = "internal"     // Внутренняя ошибка
)

// ErrorResponse описывает ошибку с категорией, кодом и сообщением.
type ErrorResponse struct {
	StatusCode int       `json:"-"`
	Kind       ErrorKind `json:"-"`
	Message    string    `json:"reason"`
}

// NewErrorResponse создает новую ошибку с категорией, кодом и сообщением.
func NewErrorResponse(statusCode int, kind ErrorKind, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Kind:       kind,
		Message:    message}
}

// NewValidationError - ошибка валидации входных данных.
func NewValidationError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, ValidationError, message)
}

// NewPreconditionError - операция запрошена вне допустимой фазы тендера.
func NewPreconditionError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnprocessableEntity, PreconditionError, message)
}

// NewConflictError - конфликт с уже зафиксированным состоянием.
func NewConflictError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusConflict, ConflictError, message)
}

// NewNotFoundError - сущность не найдена.
func NewNotFoundError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, NotFoundError, message)
}

// NewInternalError - внутренняя ошибка сервиса.
func NewInternalError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, InternalError, message)
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
