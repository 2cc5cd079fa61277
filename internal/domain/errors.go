package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("credenciales incorrectas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConcurrency        = errors.New("conflicto de concurrencia, reintente la operación")
)

// ValidationError error corregible por el usuario, asociado opcionalmente a un campo.
// Field vacío = error de formulario (non-field).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError construye un error de validación para un campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewInsufficientStockError error de validación que además es ErrInsufficientStock.
func NewInsufficientStockError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: ErrInsufficientStock}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// PermissionError el actor no tiene la capacidad requerida (can_sale, admin, etc.).
type PermissionError struct {
	Capability string
	Message    string
}

// NewPermissionError construye un error de permiso.
func NewPermissionError(capability, message string) *PermissionError {
	return &PermissionError{Capability: capability, Message: message}
}

func (e *PermissionError) Error() string { return e.Message }

func (e *PermissionError) Unwrap() error { return ErrForbidden }

// NotFoundError referencia inexistente o de otra empresa. Ambos casos se reportan igual
// para no filtrar la existencia de datos de otros tenants.
type NotFoundError struct {
	Resource string
	Field    string
}

// NewNotFoundError construye un error de recurso no encontrado.
func NewNotFoundError(resource, field string) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field}
}

func (e *NotFoundError) Error() string { return e.Resource + " no encontrado" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
