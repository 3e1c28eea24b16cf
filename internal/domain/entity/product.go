package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El núcleo de movimientos solo lo lee.
type Product struct {
	ID                string
	Reference         string // código único, ej. SAV-2026-0001
	Name              string
	CategoryID        string // vacío si no tiene categoría
	PackagingTypeID   string
	PurchasePrice     int64           // en la unidad monetaria mínima
	LowStockThreshold decimal.Decimal // admite cuartos y octavos
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
