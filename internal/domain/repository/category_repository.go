package repository

import (
	"context"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// CategoryRepository lectura de categorías (el catálogo se administra fuera del núcleo).
type CategoryRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
