package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
)

// DealHandler CRUD del pipeline de negocios.
type DealHandler struct {
	uc *workflow.DealUseCase
}

// NewDealHandler construye el handler.
func NewDealHandler(uc *workflow.DealUseCase) *DealHandler {
	return &DealHandler{uc: uc}
}

// Create godoc
// @Summary      Crear negocio
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDealRequest  true  "negocio"
// @Success      201  {object}  dto.APIResponse{data=dto.DealResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/deals [post]
func (h *DealHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDealRequest
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
// @Summary      Listar negocios
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "createdAt | value | closeDate | stage"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        stage      query  string  false  "Etapa"
// @Param        cardCode   query  string  false  "Cliente"
// @Success      200  {object}  dto.APIResponse{data=[]dto.DealResponse}
// @Router       /api/deals [get]
func (h *DealHandler) List(c *fiber.Ctx) error {
	in := dto.DealListRequest{PageRequest: defaultPage()}
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
// @Summary      Detalle de negocio
// @Tags         deals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.DealResponse}
// @Router       /api/deals/{id} [get]
func (h *DealHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar negocio
// @Tags         deals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateDealRequest  true  "campos a modificar"
// @Success      200  {object}  dto.APIResponse{data=dto.DealResponse}
// @Router       /api/deals/{id} [put]
func (h *DealHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDealRequest
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
// @Summary      Eliminar negocio
// @Tags         deals
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/deals/{id} [delete]
func (h *DealHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
