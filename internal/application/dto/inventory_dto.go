package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de movimiento (sin hora).
const DateLayout = "2006-01-02"

// MovementItemRequest línea de un movimiento.
type MovementItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`   // >= 0.125, múltiplo de 0.125
	UnitPrice decimal.Decimal `json:"unit_price"` // >= 0
}

// CreateMovementRequest body para POST /api/movements (crea un borrador).
type CreateMovementRequest struct {
	Type            string `json:"type" validate:"required,oneof=in out transfer"`
	FromWarehouseID string `json:"from_warehouse_id,omitempty" validate:"omitempty,uuid"`
	ToWarehouseID   string `json:"to_warehouse_id,omitempty" validate:"omitempty,uuid"`
	SupplierID      string `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	CustomerID      string `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	MovementDate    string `json:"movement_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes           string `json:"notes,omitempty" validate:"max=1000"`
}

// CompleteMovementRequest body para POST /api/movements/:id/complete.
type CompleteMovementRequest struct {
	Items []MovementItemRequest `json:"items" validate:"required,min=1,dive"`
}

// EditMovementRequest body para PUT /api/movements/:id. El tipo no se puede cambiar;
// si se envía debe coincidir con el actual. Items es obligatorio si el movimiento está completado.
type EditMovementRequest struct {
	Type            string                `json:"type,omitempty" validate:"omitempty,oneof=in out transfer"`
	FromWarehouseID string                `json:"from_warehouse_id,omitempty" validate:"omitempty,uuid"`
	ToWarehouseID   string                `json:"to_warehouse_id,omitempty" validate:"omitempty,uuid"`
	SupplierID      string                `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	CustomerID      string                `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	MovementDate    string                `json:"movement_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes           string                `json:"notes,omitempty" validate:"max=1000"`
	Items           []MovementItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// MovementListRequest filtros de GET /api/movements.
type MovementListRequest struct {
	PageRequest
	Type        string `query:"type" validate:"omitempty,oneof=in out transfer"`
	Status      string `query:"status" validate:"omitempty,oneof=draft completed cancelled"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	From        string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// MovementItemResponse salida de una línea.
type MovementItemResponse struct {
	ID        string          `json:"id"`
	LineNo    int             `json:"line_no"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"` // Quantity * UnitPrice
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID              string                 `json:"id"`
	Reference       string                 `json:"reference"`
	Type            string                 `json:"type"`
	Status          string                 `json:"status"`
	FromWarehouseID string                 `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   string                 `json:"to_warehouse_id,omitempty"`
	SupplierID      string                 `json:"supplier_id,omitempty"`
	CustomerID      string                 `json:"customer_id,omitempty"`
	MovementDate    string                 `json:"movement_date"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedBy       string                 `json:"created_by,omitempty"`
	Total           decimal.Decimal        `json:"total"`
	Items           []MovementItemResponse `json:"items"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// MovementListResponse lista paginada de movimientos (sin líneas).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ShortfallResponse faltante de stock reportado al completar una salida o traslado.
type ShortfallResponse struct {
	ProductID string          `json:"product_id"`
	Reference string          `json:"reference"`
	Name      string          `json:"name"`
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
	Missing   decimal.Decimal `json:"missing"`
}
