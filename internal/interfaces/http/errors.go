package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercial-api/internal/application/dto"
	"github.com/jhoicas/comercial-api/internal/domain"
)

// statusFor traduce la clase del error de dominio a status HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrResourceExhausted):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// writeError responde con el código estable del error. Los errores sin código salen como INTERNAL.
func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	code := domain.Code(err)
	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
	}
	if code == "" || status == fiber.StatusInternalServerError {
		code = "INTERNAL"
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
