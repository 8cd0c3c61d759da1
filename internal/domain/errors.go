package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("entrada inválida")
	ErrIntegrity          = errors.New("violación de integridad")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// ValidationError entrada inválida detectada antes de cualquier escritura.
// Field nombra el campo que falló (ej. "unit_price", "client_id").
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientStockError identifica el repuesto y el faltante.
type InsufficientStockError struct {
	PartID    int64
	PartName  string
	Requested int
	Available int
}

// Shortfall unidades que faltan para cubrir lo solicitado.
func (e *InsufficientStockError) Shortfall() int {
	if e.Requested <= e.Available {
		return 0
	}
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el repuesto %q (id %d): solicitado %d, disponible %d, faltan %d",
		e.PartName, e.PartID, e.Requested, e.Available, e.Shortfall())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// IntegrityError violación de una restricción del almacenamiento (clave única, CHECK de stock).
type IntegrityError struct {
	Constraint string
	Err        error
}

func (e *IntegrityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("violación de integridad: %s", e.Constraint)
	}
	return fmt.Sprintf("violación de integridad (%s): %v", e.Constraint, e.Err)
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

func (e *IntegrityError) Unwrap() error { return e.Err }

// NotFoundError recurso referenciado que no existe (cliente, vehículo, repuesto, orden).
type NotFoundError struct {
	Resource string
	Key      any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v no encontrado", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
