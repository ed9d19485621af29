package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
)

// AnalyticsHandler recomendaciones, desempeño de agentes e insights.
type AnalyticsHandler struct {
	recommendations *analytics.RecommendationUseCase
	performance     *analytics.PerformanceUseCase
	insights        *analytics.InsightsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	recommendations *analytics.RecommendationUseCase,
	performance *analytics.PerformanceUseCase,
	insights *analytics.InsightsUseCase,
) *AnalyticsHandler {
	return &AnalyticsHandler{recommendations: recommendations, performance: performance, insights: insights}
}

// Potential godoc
// @Summary      Clientes con mayor potencial
// @Description  Puntaje RFM invertido: menor es mejor. Excluye clientes sin facturas.
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Top N (default 5, máx 100)"
// @Success      200  {object}  dto.APIResponse{data=[]scoring.PotentialScore}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/recommendations/potential [get]
func (h *AnalyticsHandler) Potential(c *fiber.Ctx) error {
	var in dto.RecommendationRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.recommendations.Potential(c.UserContext(), actorFrom(c), in.Limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Upsell godoc
// @Summary      Oportunidades de upsell / cross-sell
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Top N (default 5, máx 100)"
// @Success      200  {object}  dto.APIResponse{data=[]scoring.UpsellOpportunity}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/recommendations/upsell [get]
func (h *AnalyticsHandler) Upsell(c *fiber.Ctx) error {
	var in dto.RecommendationRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.recommendations.Upsell(c.UserContext(), actorFrom(c), in.Limit)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// AgentPerformance godoc
// @Summary      Desempeño de un agente
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del agente"
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=scoring.AgentPerformance}
// @Failure      403  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/performance/agents/{id} [get]
func (h *AnalyticsHandler) AgentPerformance(c *fiber.Ctx) error {
	return h.agentPerformance(c, c.Params("id"))
}

// MyPerformance godoc
// @Summary      Desempeño propio
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=scoring.AgentPerformance}
// @Router       /api/performance/me [get]
func (h *AnalyticsHandler) MyPerformance(c *fiber.Ctx) error {
	return h.agentPerformance(c, GetUserID(c))
}

func (h *AnalyticsHandler) agentPerformance(c *fiber.Ctx, agentID string) error {
	var in dto.PerformanceRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	r, err := usecase.ParseDateRange(in.From, in.To)
	if err != nil {
		return err
	}
	out, err := h.performance.AgentPerformance(c.UserContext(), actorFrom(c), agentID, r)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Insights godoc
// @Summary      Insights de negocio
// @Description  Tarjetas de KPI para la ventana (default: últimos 30 días) y datos destacados.
// @Tags         insights
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.APIResponse{data=scoring.BusinessInsights}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/insights [get]
func (h *AnalyticsHandler) Insights(c *fiber.Ctx) error {
	var in dto.InsightsRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	r, err := usecase.ParseDateRange(in.From, in.To)
	if err != nil {
		return err
	}
	out, err := h.insights.Insights(c.UserContext(), actorFrom(c), r)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}
