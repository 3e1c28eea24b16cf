package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	return r.get(ctx, query, productID, warehouseID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.get(ctx, query, productID, warehouseID)
}

func (r *StockRepo) get(ctx context.Context, query, productID, warehouseID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Adjust suma delta en una sola sentencia; la fila se crea si no existe.
func (r *StockRepo) Adjust(ctx context.Context, productID, warehouseID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var qty decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, delta).Scan(&qty); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return decimal.Zero, mapped
		}
		return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
	}
	return qty, nil
}

func stockLevelQuery() squirrel.SelectBuilder {
	return psql.Select(
		"s.product_id",
		"p.reference AS product_reference",
		"p.name AS product_name",
		"s.warehouse_id",
		"s.quantity",
		"p.low_stock_threshold",
		"s.updated_at",
	).From("stock s").Join("products p ON p.id = s.product_id")
}

// ListByWarehouse filas de stock de una bodega ordenadas por referencia de producto.
func (r *StockRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]entity.StockLevel, error) {
	query, args, err := stockLevelQuery().
		Where(squirrel.Eq{"s.warehouse_id": warehouseID}).
		OrderBy("p.reference").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stock query: %w", err)
	}
	var levels []entity.StockLevel
	if err := pgxscan.Select(ctx, r.q, &levels, query, args...); err != nil {
		return nil, fmt.Errorf("list stock by warehouse: %w", err)
	}
	return levels, nil
}

// ListLowStock productos activos con cantidad <= umbral.
func (r *StockRepo) ListLowStock(ctx context.Context, warehouseID string) ([]entity.StockLevel, error) {
	b := stockLevelQuery().
		Where("p.active").
		Where("s.quantity <= p.low_stock_threshold")
	if warehouseID != "" {
		b = b.Where(squirrel.Eq{"s.warehouse_id": warehouseID})
	}
	query, args, err := b.OrderBy("s.quantity", "p.reference").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build low stock query: %w", err)
	}
	var levels []entity.StockLevel
	if err := pgxscan.Select(ctx, r.q, &levels, query, args...); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return levels, nil
}
