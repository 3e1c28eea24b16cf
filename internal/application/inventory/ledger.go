package inventory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// Ledger libro de stock: acumulador por (producto, bodega). No valida no-negatividad,
// eso lo hace el procesador antes de aplicar. Solo debe usarse dentro de TxRunner.Run.
type Ledger struct {
	stock repository.StockRepository
	log   zerolog.Logger
}

// NewLedger construye el libro sobre el repositorio de stock de la transacción.
func NewLedger(stock repository.StockRepository, log zerolog.Logger) *Ledger {
	return &Ledger{stock: stock, log: log}
}

// Adjust aplica el ajuste (get-or-create) y devuelve la cantidad resultante.
func (l *Ledger) Adjust(ctx context.Context, a inventory.Adjustment) (decimal.Decimal, error) {
	if !a.Quantity.IsPositive() {
		return decimal.Zero, fmt.Errorf("ajuste de stock con cantidad no positiva: %s", a.Quantity)
	}
	qty, err := l.stock.Adjust(ctx, a.ProductID, a.WarehouseID, a.Signed())
	if err != nil {
		return decimal.Zero, fmt.Errorf("ajustar stock %s/%s: %w", a.ProductID, a.WarehouseID, err)
	}
	if qty.IsNegative() {
		l.log.Warn().
			Str("product_id", a.ProductID).
			Str("warehouse_id", a.WarehouseID).
			Str("direction", a.Direction.String()).
			Str("quantity", qty.String()).
			Msg("stock negativo tras ajuste")
	}
	return qty, nil
}

// Available cantidad actual bloqueando la fila hasta el fin de la transacción (fila inexistente = 0).
func (l *Ledger) Available(ctx context.Context, productID, warehouseID string) (decimal.Decimal, error) {
	s, err := l.stock.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("leer stock %s/%s: %w", productID, warehouseID, err)
	}
	return s.Quantity, nil
}

// lock bloquea las filas en orden determinista y devuelve sus cantidades.
func (l *Ledger) lock(ctx context.Context, keys []inventory.StockKey) (map[inventory.StockKey]decimal.Decimal, error) {
	out := make(map[inventory.StockKey]decimal.Decimal, len(keys))
	for _, k := range keys {
		qty, err := l.Available(ctx, k.ProductID, k.WarehouseID)
		if err != nil {
			return nil, err
		}
		out[k] = qty
	}
	return out, nil
}
