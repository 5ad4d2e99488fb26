package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/videoclub-api/internal/application/dto"
	"github.com/jhoicas/videoclub-api/internal/domain"
)

// writeError traduce errores de dominio a HTTP. Los de persistencia no exponen el detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	msg := "error interno"

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	default:
		switch domain.KindOf(err) {
		case domain.KindNotFound:
			status, code = fiber.StatusNotFound, "NOT_FOUND"
		case domain.KindConcurrencyConflict, domain.KindPreconditionFailed:
			// perder la carrera por la última copia se informa igual que "sin copias"
			status, code = fiber.StatusUnprocessableEntity, preconditionCode(err)
		}
	}
	if status != fiber.StatusInternalServerError {
		msg = err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func preconditionCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrRentalAlreadyReturned):
		return "ALREADY_RETURNED"
	case errors.Is(err, domain.ErrCustomerInactive):
		return "CUSTOMER_INACTIVE"
	case errors.Is(err, domain.ErrMovieUnavailable):
		return "MOVIE_UNAVAILABLE"
	case errors.Is(err, domain.ErrInvalidDueDate):
		return "INVALID_DUE_DATE"
	}
	return "PRECONDITION_FAILED"
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
