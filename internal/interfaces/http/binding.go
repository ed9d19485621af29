package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindBody parsea el JSON del cuerpo y valida las etiquetas validate.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: cuerpo inválido: %v", domain.ErrInvalidInput, err)
	}
	return validate.Struct(out)
}

// bindQuery parsea la query string y valida. Los valores ya presentes en out
// (p. ej. la paginación por defecto) se conservan si el parámetro no llega.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: parámetros inválidos: %v", domain.ErrInvalidInput, err)
	}
	return validate.Struct(out)
}

// defaultPage paginación por defecto antes de leer la query.
func defaultPage() dto.PageRequest {
	return dto.PageRequest{Page: dto.DefaultPage, Limit: dto.DefaultLimit}
}
