package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	appinv "github.com/jhoicas/stock-api/internal/application/inventory"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/inventory"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// ProductUseCase alta y consulta de productos. El stock se maneja solo vía movimientos.
type ProductUseCase struct {
	txRunner appinv.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner appinv.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto con referencia {CATEGORÍA}-{AÑO}-{NNNN} generada en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.LowStockThreshold.IsNegative() {
		return nil, domain.NewValidationError("low_stock_threshold", "no puede ser negativo")
	}
	if !in.LowStockThreshold.IsZero() && !inventory.ValidQuantity(in.LowStockThreshold) {
		return nil, domain.NewValidationError("low_stock_threshold", "debe ser múltiplo de 0.125")
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		CategoryID:        in.CategoryID,
		PackagingTypeID:   in.PackagingTypeID,
		PurchasePrice:     in.PurchasePrice,
		LowStockThreshold: in.LowStockThreshold,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	err := uc.txRunner.Run(ctx, func(repos appinv.TxRepos) error {
		var code string
		if product.CategoryID != "" {
			cat, err := repos.Categories.GetByID(ctx, product.CategoryID)
			if err != nil {
				return fmt.Errorf("obtener categoría: %w", err)
			}
			if cat == nil {
				return domain.NewValidationError("category_id", "categoría no encontrada")
			}
			code = cat.Code
		}
		ref, err := appinv.GenerateProductReference(ctx, repos.Counters, code, now)
		if err != nil {
			return err
		}
		product.Reference = ref
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// GetByReference obtiene un producto por su referencia.
func (uc *ProductUseCase) GetByReference(ctx context.Context, reference string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Reference:         p.Reference,
		Name:              p.Name,
		CategoryID:        p.CategoryID,
		PackagingTypeID:   p.PackagingTypeID,
		PurchasePrice:     p.PurchasePrice,
		LowStockThreshold: p.LowStockThreshold,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
