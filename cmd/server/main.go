package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/ondetemapp/ondetem/internal/auth"
	"github.com/ondetemapp/ondetem/internal/config"
	"github.com/ondetemapp/ondetem/internal/database"
	"github.com/ondetemapp/ondetem/internal/graph"
	"github.com/ondetemapp/ondetem/internal/logging"
	"github.com/ondetemapp/ondetem/internal/middleware"
	"github.com/ondetemapp/ondetem/internal/notify"
	"github.com/ondetemapp/ondetem/internal/services"
	"github.com/ondetemapp/ondetem/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanoutHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Stores
	users := store.NewGormUsers(database.DB)
	products := store.NewGormProducts(database.DB)
	supermarkets := store.NewGormSupermarkets(database.DB)
	notificationLogs := store.NewGormNotificationLogs(database.DB)

	// Credential verification: Firebase first, legacy tokens as fallback.
	// Without Firebase credentials the server still runs on the legacy path.
	strategies := make([]auth.Strategy, 0, 2)
	fbClient, err := auth.NewFirebaseAuthClient(context.Background(), cfg.FirebaseProjectID)
	if err != nil {
		slog.Warn("firebase init failed, running with legacy tokens only", "error", err)
	} else {
		strategies = append(strategies, auth.NewFirebaseStrategy(fbClient))
	}
	strategies = append(strategies, auth.NewLegacyStrategy(cfg.JWTSecret))
	verifier := auth.NewVerifier(strategies...)

	// Push fan-out consumer
	dispatcher := notify.NewDispatcher(
		users,
		supermarkets,
		notificationLogs,
		notify.NewExpoClient(cfg.ExpoPushURL, cfg.ExpoPushTimeout),
	)
	dispatcher.Start()

	// Services
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService := services.NewAuthService(users, issuer)
	productService := services.NewProductService(products, dispatcher)
	supermarketService := services.NewSupermarketService(supermarkets, products)

	// GraphQL schema
	resolver := graph.NewResolver(verifier, users, authService, productService, supermarketService)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		slog.Error("schema build failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "ok"
		if err := database.Ping(); err != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{"status": status, "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
	app.Post("/graphql", graph.Handler(schema))

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dispatcher.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
