package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Ventas-api/docs"
	"github.com/jhoicas/Ventas-api/internal/application/access"
	appanalytics "github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/importer"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
	infrakafka "github.com/jhoicas/Ventas-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/Ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Ventas-api/internal/infrastructure/redis"
	"github.com/jhoicas/Ventas-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// @title                       Ventas API
// @version                     1.0
// @description                 Backend comercial: clientes, leads, tareas, negocios, cotizaciones y analítica de ventas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.UpMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	callRepo := postgres.NewCallRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	dealRepo := postgres.NewDealRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Notificaciones: Kafka si hay brokers; si no, se descartan.
	var notifier workflow.Notifier = workflow.NopNotifier{}
	if cfg.Kafka.Enabled() {
		kn := infrakafka.NewNotifier(log, cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
		defer func() {
			if err := kn.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor kafka")
			}
		}()
		notifier = kn
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("notificaciones por kafka habilitadas")
	}

	// Lock de importación: Redis si está configurado; si no, lock en proceso.
	var locker importer.Locker = importer.NewLocalLocker()
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = infraredis.NewLocker(rdb, cfg.Redis.LockTTL, log)
	}

	clock := scoring.SystemClock{}
	engine := scoring.NewEngine(cfg.Scoring, clock)
	resolver := access.NewResolver(userRepo)
	deps := workflow.Deps{Users: userRepo, Access: resolver, Notifier: notifier, Clock: clock}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(log, cfg.App.IsProduction()),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo, resolver),
		CustomerUC:       usecase.NewCustomerUseCase(customerRepo, resolver),
		DocumentUC:       usecase.NewDocumentUseCase(invoiceRepo, paymentRepo, resolver),
		JourneyUC:        appanalytics.NewJourneyUseCase(customerRepo, invoiceRepo, paymentRepo, resolver, engine, infrapdf.NewStatementGenerator(cfg.App.Name)),
		RecommendationUC: appanalytics.NewRecommendationUseCase(customerRepo, invoiceRepo, resolver, engine),
		PerformanceUC:    appanalytics.NewPerformanceUseCase(userRepo, customerRepo, invoiceRepo, orderRepo, quotationRepo, callRepo, resolver, engine),
		InsightsUC:       appanalytics.NewInsightsUseCase(customerRepo, invoiceRepo, paymentRepo, resolver, engine),
		DashboardUC:      appanalytics.NewDashboardUseCase(analyticsRepo, resolver, clock),
		LeadUC:           workflow.NewLeadUseCase(leadRepo, taskRepo, deps, cfg.Workflow.LeadFollowUpDays),
		TaskUC:           workflow.NewTaskUseCase(taskRepo, deps),
		DealUC:           workflow.NewDealUseCase(dealRepo, deps),
		QuotationUC:      workflow.NewQuotationUseCase(quotationRepo, customerRepo, deps),
		Importer:         importer.NewInvoiceImporter(invoiceRepo, customerRepo, spreadsheet.NewParser(), locker, notifier, log),
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
