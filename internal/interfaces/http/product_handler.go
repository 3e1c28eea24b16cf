package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
)

type productService interface {
	Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProductResponse, error)
	GetByReference(ctx context.Context, reference string) (*dto.ProductResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error)
}

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc productService
}

// NewProductHandler construye el handler.
func NewProductHandler(uc productService) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Description  La referencia se genera con el código de la categoría (GEN si no tiene).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
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

// GetByReference godoc
// @Summary      Obtener producto por referencia
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        reference  path  string  true  "Referencia, ej. SAV-2026-0001"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/by-reference/{reference} [get]
func (h *ProductHandler) GetByReference(c *fiber.Ctx) error {
	out, err := h.uc.GetByReference(c.UserContext(), c.Params("reference"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
