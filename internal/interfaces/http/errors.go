package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/pkg/validator"
)

// retryAfterSeconds es el valor de Retry-After cuando el bloqueo de stock expira.
const retryAfterSeconds = "1"

// writeError traduce los errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var shortage *domain.InsufficientStockError
	switch {
	case errors.As(err, &shortage):
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code: "INSUFFICIENT_STOCK", Message: domain.ErrInsufficientStock.Error(), Shortages: shortage.Shortages,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrIncompatibleUnit):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INCOMPATIBLE_UNIT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoRecipeDefined):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotProducible):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_PRODUCIBLE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrRetryable):
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "RETRY", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// bindJSON parsea el body y lo valida. Si falla, ya escribió la respuesta 400 y devuelve false.
func bindJSON(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return validateInput(c, out)
}

// bindQuery parsea los query params y los valida.
func bindQuery(c *fiber.Ctx, out any) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return validateInput(c, out)
}

func validateInput(c *fiber.Ctx, out any) (bool, error) {
	errs := validator.ValidateStruct(out)
	if len(errs) == 0 {
		return true, nil
	}
	fields := make([]dto.FieldError, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, dto.FieldError{Field: e.FailedField, Tag: e.Tag, Param: e.Value})
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
		Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
	})
}
