package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	Type        string
	Status      string
	WarehouseID string // origen o destino
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// StockMovementRepository define el puerto de persistencia para la cabecera de movimientos (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// GetForUpdate bloquea la cabecera; dos completados concurrentes del mismo borrador se serializan aquí.
	GetForUpdate(ctx context.Context, id string) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}

// StockMovementItemRepository líneas de un movimiento.
type StockMovementItemRepository interface {
	Create(ctx context.Context, item *entity.StockMovementItem) error
	ListByMovement(ctx context.Context, movementID string) ([]entity.StockMovementItem, error)
	DeleteByMovement(ctx context.Context, movementID string) error
}
