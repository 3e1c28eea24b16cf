package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
)

type warehouseService interface {
	Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error)
	Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.WarehouseListResponse, error)
}

// WarehouseHandler maneja las peticiones HTTP para Warehouse (protegido).
type WarehouseHandler struct {
	uc warehouseService
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc warehouseService) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.WarehouseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega
// @Description  Nombre y estado. Una bodega inactiva no admite movimientos nuevos.
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.WarehouseListResponse
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
