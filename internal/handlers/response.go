package handlers

import (
	"errors"
	"fmt"

	"butik/internal/services"
	"butik/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500 carrying failMsg.
func respondError(c *fiber.Ctx, err error, notFoundMsg, failMsg string) error {
	status, msg := fiber.StatusInternalServerError, failMsg

	switch {
	case errors.Is(err, services.ErrEmptyCart):
		status, msg = fiber.StatusBadRequest, "Cart is empty"
	case errors.Is(err, services.ErrEmailTaken):
		status, msg = fiber.StatusBadRequest, "Email already registered"
	case errors.Is(err, services.ErrInvalidSignature):
		status, msg = fiber.StatusBadRequest, "Invalid payment signature"
	case errors.Is(err, services.ErrValidation):
		status, msg = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, msg = fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrForbidden):
		status, msg = fiber.StatusForbidden, "Access denied"
	case errors.Is(err, services.ErrNotFound):
		status, msg = fiber.StatusNotFound, notFoundMsg
	case errors.Is(err, services.ErrConflict):
		status, msg = fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrPaymentNotConfigured):
		msg = "Payment gateway not configured"
	}

	if status == fiber.StatusInternalServerError {
		logger.FromFiber(c).Error(failMsg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// parseBody decodes the request body into out and validates it. It writes
// the 400 response itself and returns false when the body is unusable.
func parseBody(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		logger.FromFiber(c).Debug("error parsing request body", zap.Error(err))
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": errorMessages,
		})
	}
	return true, nil
}
