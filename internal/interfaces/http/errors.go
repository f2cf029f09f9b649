package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pt-labs/product-inventory-api/internal/application/dto"
	"github.com/pt-labs/product-inventory-api/internal/domain"
)

// respondError traduce los errores de dominio al cuerpo uniforme de la API:
// {path, message, error, status, timestamp}. La taxonomía completa se propaga
// sin tocar desde el punto de detección hasta aquí.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := "INTERNAL_SERVER_ERROR"

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrInvalidParameter):
		status = fiber.StatusBadRequest
		kind = "BAD_REQUEST"
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
		kind = "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		status = fiber.StatusConflict
		kind = "CONFLICT"
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Path:      c.Path(),
		Message:   err.Error(),
		Error:     kind,
		Status:    status,
		Timestamp: time.Now(),
	})
}

// badRequest respuesta 400 para errores de forma detectados en el transporte
// (cuerpo no parseable), antes de llegar al dominio.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Path:      c.Path(),
		Message:   message,
		Error:     "BAD_REQUEST",
		Status:    fiber.StatusBadRequest,
		Timestamp: time.Now(),
	})
}
