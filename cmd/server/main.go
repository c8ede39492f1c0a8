package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/adapter/cache"
	"github.com/seu-repo/vui-gateway/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/vui-gateway/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/vui-gateway/internal/adapter/platform/alexa"
	"github.com/seu-repo/vui-gateway/internal/adapter/platform/clova"
	"github.com/seu-repo/vui-gateway/internal/adapter/platform/google"
	"github.com/seu-repo/vui-gateway/internal/adapter/signature"
	"github.com/seu-repo/vui-gateway/internal/observability/telemetry"
	"github.com/seu-repo/vui-gateway/internal/ports"
	"github.com/seu-repo/vui-gateway/internal/service/assistant"
	"github.com/seu-repo/vui-gateway/internal/service/skill"
	"github.com/seu-repo/vui-gateway/pkg/config"
)

const (
	serviceName    = "vui-gateway"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting VUI Gateway",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.OpenTelemetry.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.OpenTelemetry.Jaeger.Endpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize Certificate Cache
	var certCache ports.Cache
	switch cfg.Cache.Backend {
	case "redis":
		certCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	default:
		certCache = cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
	}
	defer certCache.Close()

	certStore := cache.NewCertificateStore(certCache)

	// 5. Initialize Signature Verification
	fetcher := signature.NewHTTPFetcher(cfg.Signature.FetchTimeout, logger)
	alexaValidator := signature.NewCertChainValidator(fetcher, logger)
	alexaVerifier := signature.NewAlexaVerifier(alexaValidator, cfg.Signature.TimestampTolerance, logger)

	clovaCertURL := cfg.Signature.ClovaCertURL
	if clovaCertURL == "" {
		clovaCertURL = signature.DefaultClovaCertURL
	}
	clovaVerifier := signature.NewClovaVerifier(certStore, fetcher, clovaCertURL, logger)

	// 6. Initialize Platform Adapters
	adapters := []ports.PlatformAdapter{
		google.NewAdapter(google.Config{
			DefaultIconURL: cfg.Assistant.DefaultIconURL,
		}, logger),
		alexa.NewAdapter(alexaVerifier, logger),
		clova.NewAdapter(clova.Config{
			SilentAudioBaseURL: cfg.Assistant.SilentAudioBaseURL,
			SpeechLang:         cfg.Assistant.ClovaSpeechLang,
		}, clovaVerifier, logger),
	}

	// 7. Initialize Skill and Dispatcher
	skillHandler := skill.NewSampleSkill(logger)
	assistantService := assistant.NewService(adapters, skillHandler, logger)

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker(logger))
	}

	// Health Check Endpoints
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := certCache.Ping(); err != nil {
			return c.Status(503).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	// Webhook Routes
	webhookHandler := handlers.NewWebhookHandler(assistantService, logger)
	app.Post("/webhook/google", webhookHandler.Google)
	app.Post("/webhook/alexa", webhookHandler.Alexa)
	app.Post("/webhook/clova", webhookHandler.Clova)

	// 9. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
