package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stock-api/internal/application/dto"
	"github.com/jhoicas/stock-api/internal/domain"
)

// writeError traduce errores de dominio a HTTP. Lo no reconocido es 500 y se registra.
func writeError(c *fiber.Ctx, err error) error {
	var (
		verr  *domain.ValidationError
		serr  *domain.StateError
		insuf *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &verr):
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, dto.FieldErrorResponse{Field: f.Field, Message: f.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.As(err, &insuf):
		resp := dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente en la bodega de origen"}
		for _, s := range insuf.Shortfalls {
			resp.Shortfalls = append(resp.Shortfalls, dto.ShortfallResponse{
				ProductID: s.ProductID,
				Reference: s.Reference,
				Name:      s.Name,
				Available: s.Available,
				Requested: s.Requested,
				Missing:   s.Missing,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(resp)
	case errors.As(err, &serr):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: serr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// badBody respuesta para cuerpos que no se pueden decodificar.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
