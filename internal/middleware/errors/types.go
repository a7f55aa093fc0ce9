package errors

import "net/http"

// APIError interface for custom error types
type APIError interface {
	error
	Status() int
}

// AuthError authentication hatası için custom error type.
// RBAC middleware'i panic ile fırlatır, recovery middleware'i yakalar.
type AuthError struct {
	Message    string
	StatusCode int
}

// NewAuthError 401 ile auth hatası oluşturur
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message, StatusCode: http.StatusUnauthorized}
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Status() int {
	return e.StatusCode
}

// RBACError authorization hatası için custom error type.
// Resource ve Action log'a düşer, response'a yazılmaz.
type RBACError struct {
	Message    string
	StatusCode int
	Resource   string
	Action     string
}

// NewRBACError 403 ile yetki hatası oluşturur
func NewRBACError(message, resource, action string) *RBACError {
	return &RBACError{
		Message:    message,
		StatusCode: http.StatusForbidden,
		Resource:   resource,
		Action:     action,
	}
}

func (e *RBACError) Error() string {
	return e.Message
}

func (e *RBACError) Status() int {
	return e.StatusCode
}
