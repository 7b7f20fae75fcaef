package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is the error type the controller layer returns; the central
// error handler translates it into the response envelope.
type AppError struct {
	Status    int
	ErrorType string // machine-readable code the client can branch on, optional
	Message   string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

func NewForbidden(errorType, message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, ErrorType: errorType, Message: message}
}

// NewNotFound covers both missing and not-owned records so that
// ownership probes cannot distinguish the two.
func NewNotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}
