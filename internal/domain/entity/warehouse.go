package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeDepot     = "depot"          // bodega de almacenamiento
	WarehouseTypeSalePoint = "point_de_vente" // punto de venta
)

// Warehouse representa una bodega o punto de venta donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Type      string // depot, point_de_vente
	Code      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidWarehouseType indica si t es un tipo de bodega conocido.
func IsValidWarehouseType(t string) bool {
	return t == WarehouseTypeDepot || t == WarehouseTypeSalePoint
}
