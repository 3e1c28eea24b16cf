package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La referencia se genera a partir del código de la categoría.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	CategoryID        string          `json:"category_id,omitempty" validate:"omitempty,uuid"`
	PackagingTypeID   string          `json:"packaging_type_id" validate:"required,uuid"`
	PurchasePrice     int64           `json:"purchase_price" validate:"min=0"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	Reference         string          `json:"reference"`
	Name              string          `json:"name"`
	CategoryID        string          `json:"category_id,omitempty"`
	PackagingTypeID   string          `json:"packaging_type_id"`
	PurchasePrice     int64           `json:"purchase_price"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
