package service

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateLogin      = errors.New("login already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid refresh token")
	ErrTooManyAttempts     = errors.New("too many login attempts")
	ErrPasswordTooLong     = errors.New("password too long")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ValidationError carries a message that is safe to show the client.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
