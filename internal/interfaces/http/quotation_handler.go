package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
)

// QuotationHandler cotizaciones y su aprobación.
type QuotationHandler struct {
	uc *workflow.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *workflow.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "cotización"
// @Success      201  {object}  dto.APIResponse{data=dto.QuotationResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
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
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "docDate | docTotal | status | createdAt"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        status     query  string  false  "Estado de aprobación"
// @Param        cardCode   query  string  false  "Cliente"
// @Success      200  {object}  dto.APIResponse{data=[]dto.QuotationResponse}
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	in := dto.QuotationListRequest{PageRequest: defaultPage()}
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
// @Summary      Detalle de cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.QuotationResponse}
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Submit godoc
// @Summary      Enviar cotización a aprobación
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.QuotationResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/quotations/{id}/submit [post]
func (h *QuotationHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Approve godoc
// @Summary      Aprobar cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.QuotationResponse}
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/quotations/{id}/approve [post]
func (h *QuotationHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Reject godoc
// @Summary      Rechazar cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.RejectRequest  true  "motivo"
// @Success      200  {object}  dto.APIResponse{data=dto.QuotationResponse}
// @Router       /api/quotations/{id}/reject [post]
func (h *QuotationHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Reject(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}
