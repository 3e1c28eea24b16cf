package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Las escrituras solo se usan dentro de transacciones (TxRunner).
type StockRepository interface {
	// Get lectura sin bloqueo; una fila inexistente se devuelve con cantidad 0.
	Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); fila inexistente = cantidad 0.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error)
	// Adjust suma delta (con signo) de forma atómica creando la fila si no existe; devuelve la cantidad resultante.
	Adjust(ctx context.Context, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error)
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]entity.StockLevel, error)
	// ListLowStock filas con cantidad <= umbral del producto. warehouseID vacío = todas las bodegas.
	ListLowStock(ctx context.Context, warehouseID string) ([]entity.StockLevel, error)
}
