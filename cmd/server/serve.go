package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/config"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/database"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/logging"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/mcp"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/routes"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	mcpauth "github.com/modelcontextprotocol/go-sdk/auth"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), v)
		},
	}
}

func runServe(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.Setup(cfg.LogLevel),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetention, cleanupDone)

	// MCP
	m := metrics.New()
	mcpServer := mcp.NewServer(mcp.Deps{
		Store:           store.New(db),
		Resolver:        identity.NewResolver(cfg),
		Metrics:         m,
		Logger:          slog.Default(),
		DevToolsEnabled: cfg.DevToolsEnabled,
	})
	var verifier mcpauth.TokenVerifier
	if cfg.AuthMode == config.AuthModeOAuth {
		jwks := identity.NewJWKSVerifier(cfg)
		defer jwks.Close()
		if err := jwks.Warm(); err != nil {
			slog.Warn("jwks warm-up failed, retrying on first request", "error", err)
		}
		verifier = jwks.VerifyToken
	}
	if cfg.DevToolsEnabled {
		slog.Warn("dev tools enabled", "tool", "seed_demo")
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:             4 * 1024 * 1024,
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
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
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, routes.Handlers{
		Health:    handlers.NewHealthHandler(db),
		Discovery: handlers.NewDiscoveryHandler(cfg),
		Widget:    handlers.NewWidgetHandler(cfg),
		MCP:       mcpServer.Handler(verifier, handlers.MetadataURL(cfg)),
		Metrics:   m.Handler(),
	})

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "auth_mode", cfg.AuthMode)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		slog.Error("server failed to start", "error", err)
		close(cleanupDone)
		pgLogHandler.Stop()
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	close(cleanupDone)
	pgLogHandler.Stop()

	slog.SetDefault(slog.New(logging.NewJSONHandler(os.Stdout, cfg.LogLevel)))
	slog.Info("server stopped")
	return nil
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

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
