package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"paperscan/internal/config"
	"paperscan/internal/database"
	"paperscan/internal/database/migration"
	"paperscan/internal/extract"
	handlers "paperscan/internal/http/handler"
	"paperscan/internal/http/middleware"
	"paperscan/internal/llm"
	"paperscan/internal/mail"
	"paperscan/internal/otel"
	"paperscan/internal/quota"
	"paperscan/internal/repository/postgres"
	"paperscan/internal/service"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		loc = time.UTC
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing is optional: a missing collector degrades to no-op.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// LLM backends: only keyed providers get registered.
	registry, err := llm.NewRegistry(ctx, cfg.Providers)
	if err != nil {
		log.Fatalf("failed to initialize model backends: %v", err)
	}
	defer registry.Close()

	mailer, err := mail.NewSMTP(cfg.Mail)
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}

	// Initialize repositories and services
	entitlementRepo := postgres.NewEntitlementPostgres(db)
	billingEventRepo := postgres.NewBillingEventPostgres(db)
	contactRepo := postgres.NewContactPostgres(db)

	sessionStore := quota.NewSessionStore(
		cfg.Quota.MaxFreeAnalyses,
		time.Duration(cfg.Quota.SessionTTLMin)*time.Minute,
	)

	entitlementSvc := service.NewEntitlementService(entitlementRepo)
	analysisSvc := service.NewAnalysisService(
		extract.NewPDFExtractor(),
		extract.NewPubMedExtractor(),
		registry,
		entitlementSvc,
		sessionStore,
	)
	billingSvc := service.NewBillingService(cfg.Stripe.WebhookSecret, entitlementRepo, billingEventRepo, mailer)
	contactSvc := service.NewContactService(contactRepo, mailer, cfg.Mail.AdminEmail)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 * 1024 * 1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	promMw, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMw.Handler())

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, analysisSvc, entitlementSvc, billingSvc, contactSvc)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if shutdownTracing != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}
}
