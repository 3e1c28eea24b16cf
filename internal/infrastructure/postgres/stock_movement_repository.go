package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, reference, type, status, from_warehouse_id, to_warehouse_id, supplier_id, customer_id,
	movement_date, notes, created_by, created_at, updated_at`

// movementRow fila de stock_movements; las bodegas y contrapartes son opcionales.
type movementRow struct {
	ID              string    `db:"id"`
	Reference       string    `db:"reference"`
	Type            string    `db:"type"`
	Status          string    `db:"status"`
	FromWarehouseID *string   `db:"from_warehouse_id"`
	ToWarehouseID   *string   `db:"to_warehouse_id"`
	SupplierID      *string   `db:"supplier_id"`
	CustomerID      *string   `db:"customer_id"`
	MovementDate    time.Time `db:"movement_date"`
	Notes           string    `db:"notes"`
	CreatedBy       string    `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r movementRow) toEntity() *entity.StockMovement {
	return &entity.StockMovement{
		ID:              r.ID,
		Reference:       r.Reference,
		Type:            r.Type,
		Status:          r.Status,
		FromWarehouseID: deref(r.FromWarehouseID),
		ToWarehouseID:   deref(r.ToWarehouseID),
		SupplierID:      deref(r.SupplierID),
		CustomerID:      deref(r.CustomerID),
		MovementDate:    r.MovementDate,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta la cabecera del movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Reference, m.Type, m.Status,
		nullIfEmpty(m.FromWarehouseID), nullIfEmpty(m.ToWarehouseID),
		nullIfEmpty(m.SupplierID), nullIfEmpty(m.CustomerID),
		m.MovementDate, m.Notes, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera; nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera bloqueándola hasta el fin de la transacción.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockMovementRepo) get(ctx context.Context, query, id string) (*entity.StockMovement, error) {
	var row movementRow
	if err := pgxscan.Get(ctx, r.q, &row, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return row.toEntity(), nil
}

// Update reemplaza cabecera y estado. La referencia y el tipo no cambian.
func (r *StockMovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	query := `
		UPDATE stock_movements
		SET status = $2, from_warehouse_id = $3, to_warehouse_id = $4, supplier_id = $5, customer_id = $6,
		    movement_date = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Status,
		nullIfEmpty(m.FromWarehouseID), nullIfEmpty(m.ToWarehouseID),
		nullIfEmpty(m.SupplierID), nullIfEmpty(m.CustomerID),
		m.MovementDate, m.Notes, m.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la cabecera (las líneas caen por ON DELETE CASCADE si quedara alguna).
func (r *StockMovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List movimientos filtrados, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	b := psql.Select(movementColumns).From("stock_movements")
	if f.Type != "" {
		b = b.Where(squirrel.Eq{"type": f.Type})
	}
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	if f.WarehouseID != "" {
		b = b.Where(squirrel.Or{
			squirrel.Eq{"from_warehouse_id": f.WarehouseID},
			squirrel.Eq{"to_warehouse_id": f.WarehouseID},
		})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"movement_date": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.LtOrEq{"movement_date": *f.To})
	}
	b = b.OrderBy("movement_date DESC", "reference DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build movement query: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
