package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockMovementItemRepository = (*StockMovementItemRepo)(nil)

type movementItemRow struct {
	ID         string          `db:"id"`
	MovementID string          `db:"movement_id"`
	ProductID  string          `db:"product_id"`
	Quantity   decimal.Decimal `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	LineNo     int             `db:"line_no"`
	CreatedAt  time.Time       `db:"created_at"`
}

// StockMovementItemRepo líneas de movimiento sobre PostgreSQL.
type StockMovementItemRepo struct {
	q Querier
}

// NewStockMovementItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementItemRepository(q Querier) *StockMovementItemRepo {
	return &StockMovementItemRepo{q: q}
}

// Create inserta una línea.
func (r *StockMovementItemRepo) Create(ctx context.Context, it *entity.StockMovementItem) error {
	query := `
		INSERT INTO stock_movement_items (id, movement_id, product_id, quantity, unit_price, line_no, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, it.ID, it.MovementID, it.ProductID, it.Quantity, it.UnitPrice, it.LineNo, it.CreatedAt)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert stock movement item: %w", err)
	}
	return nil
}

// ListByMovement líneas en el orden en que se aplicaron.
func (r *StockMovementItemRepo) ListByMovement(ctx context.Context, movementID string) ([]entity.StockMovementItem, error) {
	query := `
		SELECT id, movement_id, product_id, quantity, unit_price, line_no, created_at
		FROM stock_movement_items WHERE movement_id = $1
		ORDER BY line_no`
	var rows []movementItemRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, movementID); err != nil {
		return nil, fmt.Errorf("list stock movement items: %w", err)
	}
	out := make([]entity.StockMovementItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.StockMovementItem(row))
	}
	return out, nil
}

// DeleteByMovement elimina todas las líneas del movimiento.
func (r *StockMovementItemRepo) DeleteByMovement(ctx context.Context, movementID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movement_items WHERE movement_id = $1`, movementID); err != nil {
		return fmt.Errorf("delete stock movement items: %w", err)
	}
	return nil
}
