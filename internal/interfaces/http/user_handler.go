package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// UserHandler identidad del usuario y su equipo.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.UserResponse}
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(user))
}

// Agents godoc
// @Summary      Reportes directos de un gerente
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del gerente"
// @Success      200  {object}  dto.APIResponse{data=[]dto.UserResponse}
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/users/{id}/agents [get]
func (h *UserHandler) Agents(c *fiber.Ctx) error {
	agents, err := h.uc.Agents(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(agents))
}
