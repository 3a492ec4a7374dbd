package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/oxbowlabs/taper/internal/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Error: message})
}

// respondServiceError maps service sentinel errors onto HTTP statuses. Errors
// without a mapping become an opaque 500 so internals never leak.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidDay):
		return respondError(c, fiber.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
	case errors.Is(err, services.ErrEntryNotFound),
		errors.Is(err, services.ErrStageNotFound),
		errors.Is(err, services.ErrGoalNotFound):
		return respondError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrEmailTaken):
		return respondError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrWeakPassword):
		return respondError(c, fiber.StatusUnprocessableEntity, "password too short")
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrRemoteWriteFailed):
		return respondError(c, fiber.StatusBadGateway, "store write failed")
	default:
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// parseBody decodes and validates a JSON request body.
func (handler *Handler) parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return respondError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := handler.validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return respondError(c, fiber.StatusUnprocessableEntity,
				"invalid field: "+validationErrors[0].Field())
		}
		return respondError(c, fiber.StatusUnprocessableEntity, "validation failed")
	}
	return nil
}
