package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/okendra/retailops-api/internal/application/dto"
	"github.com/okendra/retailops-api/internal/domain"
)

// respondError maps domain errors onto the HTTP taxonomy: validation 400,
// authorization 403, not-found 404, state conflicts and duplicates 409,
// anything else 500 (retryable by the caller).
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotAuthorized):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_AUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotEditable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_EDITABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrStateConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STATE_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrSettlementMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SETTLEMENT_MISMATCH", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateCode):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_CODE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "try again later"})
	}
}
