package inventory

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// StockQueryUseCase consultas de stock para pantallas y reportes. No toma bloqueos:
// la consistencia estricta solo se exige dentro de las transacciones de movimientos.
type StockQueryUseCase struct {
	stock repository.StockRepository
	cache StockCache
	log   zerolog.Logger
}

// NewStockQueryUseCase construye el caso de uso. cache puede ser nil.
func NewStockQueryUseCase(stock repository.StockRepository, cache StockCache, log zerolog.Logger) *StockQueryUseCase {
	if cache == nil {
		cache = NoopCache()
	}
	return &StockQueryUseCase{stock: stock, cache: cache, log: log}
}

// GetStock cantidad actual de un producto en una bodega (0 si nunca tuvo movimientos).
func (uc *StockQueryUseCase) GetStock(ctx context.Context, productID, warehouseID string) (*dto.StockResponse, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	// La generación se toma antes de leer Postgres: si un movimiento invalida la clave entre
	// la lectura y el Set, el valor leído no se guarda.
	cached, err := uc.cache.Get(ctx, productID, warehouseID)
	if err != nil {
		uc.log.Warn().Err(err).Msg("lectura de caché de stock fallida")
	} else if cached.Hit {
		return &dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: cached.Quantity}, nil
	}

	s, err := uc.stock.Get(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, productID, warehouseID, s.Quantity, cached.Version); err != nil {
		uc.log.Warn().Err(err).Msg("escritura de caché de stock fallida")
	}
	return &dto.StockResponse{ProductID: productID, WarehouseID: warehouseID, Quantity: s.Quantity}, nil
}

// ListByWarehouse filas de stock de una bodega con datos del producto.
func (uc *StockQueryUseCase) ListByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) (*dto.StockLevelListResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	levels, err := uc.stock.ListByWarehouse(ctx, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.StockLevelListResponse{
		Items: toStockLevelResponses(levels),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock productos cuya cantidad es menor o igual a su umbral. warehouseID vacío = todas las bodegas.
func (uc *StockQueryUseCase) ListLowStock(ctx context.Context, warehouseID string) (*dto.StockLevelListResponse, error) {
	levels, err := uc.stock.ListLowStock(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := toStockLevelResponses(levels)
	return &dto.StockLevelListResponse{Items: items, Page: dto.PageResponse{Limit: len(items), Total: len(items)}}, nil
}

func toStockLevelResponses(levels []entity.StockLevel) []dto.StockLevelResponse {
	out := make([]dto.StockLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.StockLevelResponse{
			ProductID:         l.ProductID,
			ProductReference:  l.ProductReference,
			ProductName:       l.ProductName,
			WarehouseID:       l.WarehouseID,
			Quantity:          l.Quantity,
			LowStockThreshold: l.LowStockThreshold,
			LowStock:          l.Quantity.LessThanOrEqual(l.LowStockThreshold),
			UpdatedAt:         l.UpdatedAt,
		})
	}
	return out
}
