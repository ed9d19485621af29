package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	UserUC           *usecase.UserUseCase
	CustomerUC       *usecase.CustomerUseCase
	DocumentUC       *usecase.DocumentUseCase
	JourneyUC        *analytics.JourneyUseCase
	RecommendationUC *analytics.RecommendationUseCase
	PerformanceUC    *analytics.PerformanceUseCase
	InsightsUC       *analytics.InsightsUseCase
	DashboardUC      *analytics.DashboardUseCase
	LeadUC           *workflow.LeadUseCase
	TaskUC           *workflow.TaskUseCase
	DealUC           *workflow.DealUseCase
	QuotationUC      *workflow.QuotationUseCase
	Importer         *importer.InvoiceImporter
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.OK(fiber.Map{"status": "ok"}))
	})

	api := app.Group("/api")

	// Auth: login es público; el registro lo hace un admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Users
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users/me", userHandler.Me)
	protected.Get("/users/:id/agents", managers, userHandler.Agents)

	// Customers + journey
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.JourneyUC)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Get("/:code", customerHandler.Get)
	customers.Get("/:code/journey", customerHandler.Journey)
	customers.Get("/:code/statement", customerHandler.Statement)

	// Recomendaciones, desempeño, insights
	analyticsHandler := NewAnalyticsHandler(deps.RecommendationUC, deps.PerformanceUC, deps.InsightsUC)
	protected.Get("/recommendations/potential", analyticsHandler.Potential)
	protected.Get("/recommendations/upsell", analyticsHandler.Upsell)
	protected.Get("/performance/me", analyticsHandler.MyPerformance)
	protected.Get("/performance/agents/:id", managers, analyticsHandler.AgentPerformance)
	protected.Get("/insights", analyticsHandler.Insights)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Leads
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads := protected.Group("/leads")
	leads.Post("/", leadHandler.Create)
	leads.Get("/", leadHandler.List)
	leads.Get("/:id", leadHandler.Get)
	leads.Put("/:id", leadHandler.Update)
	leads.Delete("/:id", leadHandler.Delete)

	// Tasks
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks := protected.Group("/tasks")
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/", taskHandler.List)
	tasks.Get("/:id", taskHandler.Get)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Post("/:id/submit", taskHandler.Submit)
	tasks.Post("/:id/approve", managers, taskHandler.Approve)
	tasks.Post("/:id/reject", managers, taskHandler.Reject)

	// Deals
	dealHandler := NewDealHandler(deps.DealUC)
	deals := protected.Group("/deals")
	deals.Post("/", dealHandler.Create)
	deals.Get("/", dealHandler.List)
	deals.Get("/:id", dealHandler.Get)
	deals.Put("/:id", dealHandler.Update)
	deals.Delete("/:id", dealHandler.Delete)

	// Quotations
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations := protected.Group("/quotations")
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.Get)
	quotations.Post("/:id/submit", quotationHandler.Submit)
	quotations.Post("/:id/approve", managers, quotationHandler.Approve)
	quotations.Post("/:id/reject", managers, quotationHandler.Reject)

	// Facturas y pagos
	documentHandler := NewDocumentHandler(deps.DocumentUC, deps.Importer)
	protected.Get("/invoices", documentHandler.Invoices)
	protected.Post("/invoices/import", adminOnly, documentHandler.ImportInvoices)
	protected.Get("/payments", documentHandler.Payments)
}
