package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
)

// LeadHandler CRUD de leads.
type LeadHandler struct {
	uc *workflow.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *workflow.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lead
// @Description  Si queda asignado se crea una tarea de seguimiento.
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "lead"
// @Success      201  {object}  dto.APIResponse{data=dto.CreateLeadResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar leads
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "createdAt | name | status"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        status     query  string  false  "new | contacted | qualified | converted | lost"
// @Param        search     query  string  false  "Texto en nombre, empresa o email"
// @Success      200  {object}  dto.APIResponse{data=[]dto.LeadResponse}
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	in := dto.LeadListRequest{PageRequest: defaultPage()}
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	list, page, err := h.uc.List(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.Paged(list, page))
}

// Get godoc
// @Summary      Detalle de lead
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.LeadResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateLeadRequest  true  "campos a modificar"
// @Success      200  {object}  dto.APIResponse{data=dto.LeadResponse}
// @Router       /api/leads/{id} [put]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLeadRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar lead
// @Tags         leads
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/leads/{id} [delete]
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
