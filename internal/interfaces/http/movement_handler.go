package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
)

// movementService lo implementa *inventory.MovementUseCase.
type movementService interface {
	CreateDraft(ctx context.Context, userID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error)
	Complete(ctx context.Context, movementID string, items []dto.MovementItemRequest) (*dto.MovementResponse, error)
	Delete(ctx context.Context, movementID string) error
	Edit(ctx context.Context, movementID string, in dto.EditMovementRequest) (*dto.MovementResponse, error)
	Get(ctx context.Context, movementID string) (*dto.MovementResponse, error)
	List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error)
}

// MovementHandler maneja las peticiones HTTP de movimientos de stock (protegido).
type MovementHandler struct {
	uc movementService
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc movementService) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear movimiento en borrador
// @Description  Valida bodegas según el tipo y asigna la referencia (APP/VT/TRF-año-consecutivo).
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "type, bodegas y contraparte"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return writeError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateDraft(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Complete godoc
// @Summary      Completar movimiento
// @Description  Guarda las líneas y aplica el stock en una sola transacción. Si falta stock no se aplica nada.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del movimiento"
// @Param        body  body  dto.CompleteMovementRequest  true  "Líneas"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "estado inválido o stock insuficiente"
// @Router       /api/movements/{id}/complete [post]
func (h *MovementHandler) Complete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CompleteMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Complete(c.UserContext(), id, in.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar movimiento
// @Description  Un movimiento completado se revierte y se vuelve a aplicar con las nuevas líneas. El tipo no cambia.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del movimiento"
// @Param        body  body  dto.EditMovementRequest  true  "Cabecera y líneas"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Edit(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.EditMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Edit(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento
// @Description  Si estaba completado, su efecto en el stock se revierte antes de borrarlo.
// @Tags         movements
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener movimiento con sus líneas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "in, out, transfer"
// @Param        status        query  string  false  "draft, completed, cancelled"
// @Param        warehouse_id  query  string  false  "Origen o destino"
// @Param        from          query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to            query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return writeError(c, domain.ErrInvalidInput)
	}
	if err := validateStruct(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
