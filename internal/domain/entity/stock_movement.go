package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn       = "in"       // entrada (abastecimiento de proveedor)
	MovementTypeOut      = "out"      // salida (venta)
	MovementTypeTransfer = "transfer" // traslado entre bodegas
)

// Estados del movimiento.
const (
	MovementStatusDraft     = "draft"
	MovementStatusCompleted = "completed"
	MovementStatusCancelled = "cancelled" // reservado, ningún flujo lo alcanza
)

// StockMovement representa un movimiento de inventario con sus líneas.
type StockMovement struct {
	ID              string
	Reference       string
	Type            string // in, out, transfer
	Status          string // draft, completed, cancelled
	FromWarehouseID string // obligatorio en out/transfer
	ToWarehouseID   string // obligatorio en in/transfer
	SupplierID      string // solo en in
	CustomerID      string // solo en out
	MovementDate    time.Time
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []StockMovementItem
}

// StockMovementItem línea de un movimiento. Solo se crea al completar el movimiento.
type StockMovementItem struct {
	ID         string
	MovementID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	LineNo     int
	CreatedAt  time.Time
}

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer:
		return true
	}
	return false
}

// IsValidMovementStatus indica si s es un estado conocido.
func IsValidMovementStatus(s string) bool {
	switch s {
	case MovementStatusDraft, MovementStatusCompleted, MovementStatusCancelled:
		return true
	}
	return false
}
