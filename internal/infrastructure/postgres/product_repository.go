package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, reference, name, category_id, packaging_type_id, purchase_price, low_stock_threshold, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Reference, p.Name, nullIfEmpty(p.CategoryID), p.PackagingTypeID,
		p.PurchasePrice, p.LowStockThreshold, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.scanOne(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

// GetByReference obtiene un producto por referencia.
func (r *ProductRepo) GetByReference(ctx context.Context, reference string) (*entity.Product, error) {
	return r.scanOne(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE reference = $1`, reference))
}

// List lista productos ordenados por referencia.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY reference LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID *string
	err := row.Scan(
		&p.ID, &p.Reference, &p.Name, &categoryID, &p.PackagingTypeID,
		&p.PurchasePrice, &p.LowStockThreshold, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryID = deref(categoryID)
	return &p, nil
}
