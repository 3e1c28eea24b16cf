package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un producto en una bodega (clave compuesta producto+bodega).
// Solo lo modifican el procesador de movimientos y la reversión.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// StockLevel fila de consulta de stock con datos del producto (lecturas sin bloqueo).
type StockLevel struct {
	ProductID         string          `db:"product_id"`
	ProductReference  string          `db:"product_reference"`
	ProductName       string          `db:"product_name"`
	WarehouseID       string          `db:"warehouse_id"`
	Quantity          decimal.Decimal `db:"quantity"`
	LowStockThreshold decimal.Decimal `db:"low_stock_threshold"`
	UpdatedAt         time.Time       `db:"updated_at"`
}
