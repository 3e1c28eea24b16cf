package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso para bodegas y puntos de venta.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega activa.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if !entity.IsValidWarehouseType(in.Type) {
		return nil, domain.NewValidationError("type", "tipo de bodega inválido")
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Code:      strings.ToUpper(strings.TrimSpace(in.Code)),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza nombre y estado. Una bodega inactiva no admite movimientos nuevos.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Active != nil {
		warehouse.Active = *in.Active
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Type:      w.Type,
		Code:      w.Code,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
