package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse cantidad actual de un producto en una bodega.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// StockLevelResponse fila de stock con datos del producto.
type StockLevelResponse struct {
	ProductID         string          `json:"product_id"`
	ProductReference  string          `json:"product_reference"`
	ProductName       string          `json:"product_name"`
	WarehouseID       string          `json:"warehouse_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	LowStock          bool            `json:"low_stock"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockLevelListResponse lista de filas de stock.
type StockLevelListResponse struct {
	Items []StockLevelResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
