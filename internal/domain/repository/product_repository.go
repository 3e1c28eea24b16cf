package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByReference(ctx context.Context, reference string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
