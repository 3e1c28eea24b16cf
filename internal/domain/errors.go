package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInvalidState      = errors.New("el estado del movimiento no permite la operación")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// FieldError describe un campo inválido de la entrada.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los campos inválidos de una operación. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError construye un ValidationError con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add agrega un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil devuelve nil si no hay campos inválidos.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// StateError indica que el movimiento no está en el estado requerido por la operación.
type StateError struct {
	MovementID string
	Status     string
	Operation  string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("movimiento %s en estado %q: no se puede %s", e.MovementID, e.Status, e.Operation)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

// Shortfall faltante de stock de un producto en la bodega de origen.
type Shortfall struct {
	ProductID string          `json:"product_id"`
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
	Missing   decimal.Decimal `json:"missing"`
}

// InsufficientStockError lleva todos los faltantes detectados, no solo el primero.
type InsufficientStockError struct {
	WarehouseID string
	Shortfalls  []Shortfall
}

func (e *InsufficientStockError) Error() string {
	refs := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		refs = append(refs, fmt.Sprintf("%s (disponible %s, solicitado %s)", s.Reference, s.Available, s.Requested))
	}
	return fmt.Sprintf("%s: %s", ErrInsufficientStock.Error(), strings.Join(refs, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
