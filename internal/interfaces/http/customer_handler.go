package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// CustomerHandler clientes, journey y estado de cuenta.
type CustomerHandler struct {
	uc      *usecase.CustomerUseCase
	journey *analytics.JourneyUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, journey *analytics.JourneyUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, journey: journey}
}

// List godoc
// @Summary      Listar clientes visibles
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página (>= 1)"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "name | cardCode | createdAt"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        status     query  string  false  "active | inactive"
// @Param        search     query  string  false  "Texto en nombre o código"
// @Success      200  {object}  dto.APIResponse{data=[]dto.CustomerResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	in := dto.CustomerListRequest{PageRequest: defaultPage()}
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
// @Summary      Detalle de cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "CardCode"
// @Success      200  {object}  dto.APIResponse{data=dto.CustomerResponse}
// @Failure      403  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/customers/{code} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(customer))
}

// Journey godoc
// @Summary      Journey del cliente
// @Description  Timeline de facturas y pagos, métricas de pago, ciclo de vida y serie de actividad.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        code    path   string  true   "CardCode"
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD"
// @Param        period  query  string  false  "weekly | monthly | quarterly | yearly"
// @Success      200  {object}  dto.APIResponse{data=dto.JourneyResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/customers/{code}/journey [get]
func (h *CustomerHandler) Journey(c *fiber.Ctx) error {
	var in dto.JourneyRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	r, err := usecase.ParseDateRange(in.From, in.To)
	if err != nil {
		return err
	}
	period, ok := scoring.ParsePeriod(in.Period)
	if !ok {
		return fmt.Errorf("%w: period %q", domain.ErrInvalidInput, in.Period)
	}
	out, err := h.journey.Journey(c.UserContext(), actorFrom(c), c.Params("code"), r, period)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Statement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         customers
// @Security     Bearer
// @Produce      application/pdf
// @Param        code  path   string  true   "CardCode"
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/customers/{code}/statement [get]
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	var in dto.JourneyRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	r, err := usecase.ParseDateRange(in.From, in.To)
	if err != nil {
		return err
	}
	code := c.Params("code")
	pdf, err := h.journey.Statement(c.UserContext(), actorFrom(c), code, r)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="estado-cuenta-%s.pdf"`, code))
	return c.Send(pdf)
}
