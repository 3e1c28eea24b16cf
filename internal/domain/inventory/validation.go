package inventory

import (
	"fmt"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// QuantityStep granularidad mínima de cantidades (octavos de unidad).
var QuantityStep = decimal.New(125, -3)

// PriceScale decimales admitidos en precios unitarios (los que guarda la columna).
const PriceScale = 2

// ValidQuantity la cantidad debe ser >= 0.125 y múltiplo de 0.125.
func ValidQuantity(q decimal.Decimal) bool {
	if q.LessThan(QuantityStep) {
		return false
	}
	return q.Mod(QuantityStep).IsZero()
}

// ValidateEndpoints reglas de bodegas y contraparte por tipo de movimiento.
func ValidateEndpoints(m *entity.StockMovement) error {
	verr := &domain.ValidationError{}
	switch m.Type {
	case entity.MovementTypeIn:
		if m.ToWarehouseID == "" {
			verr.Add("to_warehouse_id", "requerido en entradas")
		}
		if m.FromWarehouseID != "" {
			verr.Add("from_warehouse_id", "no aplica en entradas")
		}
		if m.CustomerID != "" {
			verr.Add("customer_id", "no aplica en entradas")
		}
	case entity.MovementTypeOut:
		if m.FromWarehouseID == "" {
			verr.Add("from_warehouse_id", "requerido en salidas")
		}
		if m.ToWarehouseID != "" {
			verr.Add("to_warehouse_id", "no aplica en salidas")
		}
		if m.SupplierID != "" {
			verr.Add("supplier_id", "no aplica en salidas")
		}
	case entity.MovementTypeTransfer:
		if m.FromWarehouseID == "" {
			verr.Add("from_warehouse_id", "requerido en traslados")
		}
		if m.ToWarehouseID == "" {
			verr.Add("to_warehouse_id", "requerido en traslados")
		}
		if m.FromWarehouseID != "" && m.FromWarehouseID == m.ToWarehouseID {
			verr.Add("to_warehouse_id", "debe ser distinta de la bodega de origen")
		}
		if m.SupplierID != "" || m.CustomerID != "" {
			verr.Add("counterparty", "los traslados no tienen contraparte")
		}
	default:
		verr.Add("type", "tipo de movimiento inválido")
	}
	return verr.OrNil()
}

// ValidateItems lista no vacía, producto obligatorio, cantidad con granularidad 0.125 y precio >= 0 con dos decimales.
func ValidateItems(items []entity.StockMovementItem) error {
	verr := &domain.ValidationError{}
	if len(items) == 0 {
		verr.Add("items", "se requiere al menos una línea")
		return verr
	}
	for i, it := range items {
		if it.ProductID == "" {
			verr.Add(fmt.Sprintf("items[%d].product_id", i), "requerido")
		}
		if !ValidQuantity(it.Quantity) {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "debe ser >= 0.125 y múltiplo de 0.125")
		}
		if it.UnitPrice.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].unit_price", i), "no puede ser negativo")
		} else if !it.UnitPrice.Equal(it.UnitPrice.Round(PriceScale)) {
			verr.Add(fmt.Sprintf("items[%d].unit_price", i), "admite máximo 2 decimales")
		}
	}
	return verr.OrNil()
}

// MovementTotal valor del movimiento: suma de cantidad * precio unitario.
func MovementTotal(items []entity.StockMovementItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity.Mul(it.UnitPrice))
	}
	return total
}
