package service

import "errors"

// Ошибки сервисного слоя. Контроллеры сопоставляют их с кодами ответа через errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrMaintenance       = errors.New("system is in maintenance mode")
)

func notFound(what string) error {
	return &Error{Kind: ErrNotFound, Message: what + " not found"}
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func invalid(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func invalidTransition(message string) error {
	return &Error{Kind: ErrInvalidTransition, Message: message}
}

// Error ошибка с видом (одна из Err*) и сообщением для пользователя
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
