package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// errorMapping relación error de dominio → status HTTP y código.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: ErrUserNotFound se evalúa antes que ErrNotFound.
var errorMappings = []errorMapping{
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "recurso duplicado"},
	{domain.ErrImportInProgress, fiber.StatusConflict, "IMPORT_IN_PROGRESS", "ya hay una importación en curso"},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_TRANSITION", "transición de estado no permitida"},
	{domain.ErrInvalidAssignee, fiber.StatusBadRequest, "INVALID_ASSIGNEE", "el usuario asignado no es válido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "entrada inválida"},
}

// ErrorHandler traduce los errores devueltos por los handlers al envoltorio
// común. En producción los 500 no llevan detalle.
func ErrorHandler(log *logger.Logger, isProduction bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "parámetros inválidos", validationDetail(verrs)))
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.Fail(statusCode(fe.Code), fe.Message, ""))
		}

		for _, m := range errorMappings {
			if errors.Is(err, m.target) {
				detail := ""
				if m.status == fiber.StatusBadRequest || m.status == fiber.StatusConflict {
					detail = err.Error()
				}
				return c.Status(m.status).JSON(dto.Fail(m.code, m.message, detail))
			}
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		detail := ""
		if !isProduction {
			detail = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("INTERNAL", "error interno del servidor", detail))
	}
}

func validationDetail(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fe.Field()+": "+fe.Tag()+"="+fe.Param())
			continue
		}
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	default:
		return "ERROR"
	}
}
