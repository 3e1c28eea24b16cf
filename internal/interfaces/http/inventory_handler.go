package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
)

// stockService lo implementa *inventory.StockQueryUseCase.
type stockService interface {
	GetStock(ctx context.Context, productID, warehouseID string) (*dto.StockResponse, error)
	ListByWarehouse(ctx context.Context, warehouseID string, page dto.PageRequest) (*dto.StockLevelListResponse, error)
	ListLowStock(ctx context.Context, warehouseID string) (*dto.StockLevelListResponse, error)
}

// InventoryHandler consultas de stock (solo lectura).
type InventoryHandler struct {
	uc stockService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc stockService) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetStock godoc
// @Summary      Stock de un producto en una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	productID, warehouseID := c.Query("product_id"), c.Query("warehouse_id")
	verr := &domain.ValidationError{}
	if productID == "" {
		verr.Add("product_id", "es requerido")
	}
	if warehouseID == "" {
		verr.Add("warehouse_id", "es requerido")
	}
	if err := verr.OrNil(); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetStock(c.UserContext(), productID, warehouseID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Stock de una bodega
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la bodega"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockLevelListResponse
// @Router       /api/warehouses/{id}/stock [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListByWarehouse(c.UserContext(), id, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Productos con stock bajo
// @Description  Cantidad menor o igual al umbral del producto.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {object}  dto.StockLevelListResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
