package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"

	"github.com/jhoicas/stock-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

var tracer = otel.Tracer("stock-api/postgres")

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	ctx, span := tracer.Start(ctx, "transaction")
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewTxRepos(tx)); err != nil {
		span.RecordError(err)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTxRepos arma el juego de repositorios sobre q (pool o tx).
func NewTxRepos(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Movements:  NewStockMovementRepository(q),
		Items:      NewStockMovementItemRepository(q),
		Stock:      NewStockRepository(q),
		Products:   NewProductRepository(q),
		Warehouses: NewWarehouseRepository(q),
		Categories: NewCategoryRepository(q),
		Counters:   NewReferenceCounterRepository(q),
	}
}
