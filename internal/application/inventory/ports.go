package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Movements  repository.StockMovementRepository
	Items      repository.StockMovementItemRepository
	Stock      repository.StockRepository
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Categories repository.CategoryRepository
	Counters   repository.ReferenceCounterRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cualquier error devuelto por fn produce Rollback; garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// CachedStock resultado de una lectura de caché. Version es la generación de la clave al leer:
// Invalidate la incrementa, y Set descarta valores leídos con una generación anterior.
type CachedStock struct {
	Quantity decimal.Decimal
	Hit      bool
	Version  int64
}

// StockCache caché de lecturas de stock. Solo se usa para consultas; nunca para validar disponibilidad.
type StockCache interface {
	Get(ctx context.Context, productID, warehouseID string) (CachedStock, error)
	// Set guarda qty solo si la clave sigue en la generación version.
	Set(ctx context.Context, productID, warehouseID string, qty decimal.Decimal, version int64) error
	Invalidate(ctx context.Context, keys ...inventory.StockKey) error
}

// noopCache se usa cuando no hay Redis configurado.
type noopCache struct{}

func (noopCache) Get(context.Context, string, string) (CachedStock, error) {
	return CachedStock{}, nil
}
func (noopCache) Set(context.Context, string, string, decimal.Decimal, int64) error { return nil }
func (noopCache) Invalidate(context.Context, ...inventory.StockKey) error { return nil }

// NoopCache caché vacía.
func NoopCache() StockCache { return noopCache{} }
