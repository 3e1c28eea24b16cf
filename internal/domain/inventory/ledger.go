package inventory

import (
	"sort"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Direction sentido de un ajuste de stock.
type Direction int

const (
	Increase Direction = iota + 1
	Decrease
)

func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	}
	return "unknown"
}

// StockKey identifica una fila del libro de stock.
type StockKey struct {
	ProductID   string
	WarehouseID string
}

// Adjustment ajuste de stock sobre una fila (producto, bodega). Quantity siempre es positiva.
type Adjustment struct {
	StockKey
	Quantity  decimal.Decimal
	Direction Direction
}

// Signed devuelve la variación con signo que produce el ajuste.
func (a Adjustment) Signed() decimal.Decimal {
	if a.Direction == Decrease {
		return a.Quantity.Neg()
	}
	return a.Quantity
}

// Inverse devuelve el ajuste que deshace a.
func (a Adjustment) Inverse() Adjustment {
	inv := a
	if a.Direction == Increase {
		inv.Direction = Decrease
	} else {
		inv.Direction = Increase
	}
	return inv
}

// ItemAdjustments efecto de una línea al completar el movimiento:
// in suma en destino, out resta en origen, transfer resta en origen y suma en destino.
func ItemAdjustments(m *entity.StockMovement, productID string, qty decimal.Decimal) []Adjustment {
	switch m.Type {
	case entity.MovementTypeIn:
		return []Adjustment{{StockKey{productID, m.ToWarehouseID}, qty, Increase}}
	case entity.MovementTypeOut:
		return []Adjustment{{StockKey{productID, m.FromWarehouseID}, qty, Decrease}}
	case entity.MovementTypeTransfer:
		return []Adjustment{
			{StockKey{productID, m.FromWarehouseID}, qty, Decrease},
			{StockKey{productID, m.ToWarehouseID}, qty, Increase},
		}
	}
	return nil
}

// ReverseItemAdjustments deshace ItemAdjustments para la misma línea.
func ReverseItemAdjustments(m *entity.StockMovement, productID string, qty decimal.Decimal) []Adjustment {
	forward := ItemAdjustments(m, productID, qty)
	out := make([]Adjustment, len(forward))
	for i, a := range forward {
		out[i] = a.Inverse()
	}
	return out
}

// RequiresAvailability indica si el tipo de movimiento saca mercancía de una bodega.
func RequiresAvailability(movementType string) bool {
	return movementType == entity.MovementTypeOut || movementType == entity.MovementTypeTransfer
}

// SourceWarehouse bodega contra la que se valida la disponibilidad ("" en entradas).
func SourceWarehouse(m *entity.StockMovement) string {
	if RequiresAvailability(m.Type) {
		return m.FromWarehouseID
	}
	return ""
}

// RequestedBySource suma por producto lo solicitado a la bodega de origen, en orden de aparición.
func RequestedBySource(items []entity.StockMovementItem) ([]string, map[string]decimal.Decimal) {
	order := make([]string, 0, len(items))
	totals := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		if _, seen := totals[it.ProductID]; !seen {
			order = append(order, it.ProductID)
			totals[it.ProductID] = decimal.Zero
		}
		totals[it.ProductID] = totals[it.ProductID].Add(it.Quantity)
	}
	return order, totals
}

// LockOrder devuelve las filas tocadas por los ajustes, sin repetir y en orden determinista
// (producto, bodega) para que dos transacciones bloqueen siempre en el mismo orden.
func LockOrder(adjs []Adjustment) []StockKey {
	seen := make(map[StockKey]struct{}, len(adjs))
	keys := make([]StockKey, 0, len(adjs))
	for _, a := range adjs {
		if _, ok := seen[a.StockKey]; ok {
			continue
		}
		seen[a.StockKey] = struct{}{}
		keys = append(keys, a.StockKey)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].WarehouseID < keys[j].WarehouseID
	})
	return keys
}
