package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, type, code, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Type, w.Code, w.Active, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, type, code, active, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id).Scan(&w.ID, &w.Name, &w.Type, &w.Code, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// Update actualiza nombre y estado de la bodega.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	query := `UPDATE warehouses SET name = $2, active = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, w.ID, w.Name, w.Active, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista bodegas ordenadas por código.
func (r *WarehouseRepo) List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, type, code, active, created_at, updated_at
		FROM warehouses ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &w.Code, &w.Active, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
