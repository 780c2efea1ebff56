package services

import (
	"errors"

	"butik/internal/models"
	"butik/internal/repositories"
)

var (
	ErrNotFound             = repositories.ErrNotFound
	ErrConflict             = errors.New("conflict")
	ErrValidation           = errors.New("validation failed")
	ErrForbidden            = errors.New("access denied")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidSignature     = errors.New("invalid payment signature")
	ErrPaymentNotConfigured = errors.New("payment gateway not configured")
)

// Caller identifies the authenticated user a request acts for.
type Caller struct {
	UserID string
	Email  string
	Role   string
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}
