package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanlanch/listingpro/config"
	"github.com/jordanlanch/listingpro/pkg/ai"
	"github.com/jordanlanch/listingpro/pkg/analytics"
	"github.com/jordanlanch/listingpro/pkg/api/handlers"
	"github.com/jordanlanch/listingpro/pkg/cache"
	"github.com/jordanlanch/listingpro/pkg/connectors"
	"github.com/jordanlanch/listingpro/pkg/export"
	"github.com/jordanlanch/listingpro/pkg/jobs"
	"github.com/jordanlanch/listingpro/pkg/listings"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/metrics"
	custommiddleware "github.com/jordanlanch/listingpro/pkg/middleware"
	"github.com/jordanlanch/listingpro/pkg/seed"
	"github.com/jordanlanch/listingpro/pkg/storage"
	"github.com/jordanlanch/listingpro/pkg/tasks"
	"github.com/jordanlanch/listingpro/pkg/widgets"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Open the overlay database
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("❌ Failed to create data directory: %v", err)
	}
	kv, err := storage.NewSQLiteKV(cfg.OverlayDB)
	if err != nil {
		log.Fatalf("❌ Failed to open overlay database: %v", err)
	}
	defer kv.Close()

	// Redis is optional; the dashboard just recomputes stats without it.
	var redisClient *cache.Client
	if cfg.CacheEnabled {
		redisClient, err = cache.NewClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, stats caching disabled: %v", err)
			redisClient = nil
		} else {
			log.Printf("✅ Redis connected")
			defer redisClient.Close()
		}
	}

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Seed catalogue and services
	catalogue := seed.Generate(seed.DefaultConfig(cfg.SeedSize, cfg.SeedRandkey))
	overlayStore := storage.NewOverlayStore(kv, appLogger, prometheusMetrics)

	taskService := tasks.NewService(overlayStore, appLogger)
	listingService := listings.NewService(catalogue, overlayStore, taskService, nil, appLogger, prometheusMetrics)
	widgetService := widgets.NewService(overlayStore, appLogger, nil)
	connectorService := connectors.NewService(overlayStore, appLogger)
	statsService := analytics.NewService(listingService, taskService, redisClient, appLogger, prometheusMetrics)
	exportService := export.NewService(cfg.ExportsDir, prometheusMetrics)

	var aiService *ai.Service
	if cfg.OpenAIAPIKey != "" {
		client := ai.NewOpenAIClient(ai.ClientConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}, appLogger)
		aiService = ai.NewService(client, cfg.OpenAIRequestsPerMin, prometheusMetrics)
		log.Printf("✅ AI scoring enabled (model: %s)", cfg.OpenAIModel)
	} else {
		log.Printf("ℹ️  AI scoring disabled (no API key configured)")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	taskService.Load(loadCtx)
	listingService.Load(loadCtx)
	widgetService.Load(loadCtx)
	connectorService.Load(loadCtx)
	loadCancel()

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Printf("[%s] %s - Status: %d", c.Request().Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	e.Use(prometheusMetrics.Middleware())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowCredentials: true,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())
	e.Use(globalRateLimiter.Middleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "ListingPro API",
			"version":     "0.1.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		if _, _, err := kv.Get(c.Request().Context(), storage.KeyFavoriteIDs); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":  "unhealthy",
				"storage": "down",
			})
		}
		health := map[string]any{
			"status":  "healthy",
			"storage": "up",
		}
		if redisClient != nil {
			if _, err := redisClient.Redis.Ping(c.Request().Context()).Result(); err != nil {
				health["cache"] = "down"
			} else {
				health["cache"] = "up"
			}
		}
		return c.JSON(http.StatusOK, health)
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Handlers
	listingHandler := handlers.NewListingHandler(listingService)
	bulkHandler := handlers.NewBulkHandler(listingService)
	taskHandler := handlers.NewTaskHandler(taskService)
	widgetHandler := handlers.NewWidgetHandler(widgetService)
	connectorHandler := handlers.NewConnectorHandler(connectorService)
	analyticsHandler := handlers.NewAnalyticsHandler(statsService)
	exportHandler := handlers.NewExportHandler(listingService, exportService)

	// API v1 routes
	v1 := e.Group("/api/v1")

	v1.GET("/listings", listingHandler.List)
	v1.POST("/listings", listingHandler.Create)
	v1.POST("/listings/import", listingHandler.Import)
	v1.GET("/listings/active", listingHandler.GetActive)
	v1.DELETE("/listings/active", listingHandler.ClearActive)
	v1.GET("/listings/:id", listingHandler.Get)
	v1.DELETE("/listings/:id", listingHandler.Delete)
	v1.POST("/listings/:id/favorite", listingHandler.ToggleFavorite)
	v1.PUT("/listings/:id/notes", listingHandler.SetNotes)
	v1.PUT("/listings/:id/tags", listingHandler.SetTags)
	v1.PUT("/listings/:id/score", listingHandler.SetLeadScore)
	v1.PUT("/listings/:id/valuation", listingHandler.SetValuation)
	v1.POST("/listings/:id/activate", listingHandler.SetActive)

	v1.GET("/selection", bulkHandler.GetSelection)
	v1.POST("/selection/toggle/:id", bulkHandler.ToggleSelection)
	v1.POST("/selection/toggle-all", bulkHandler.ToggleAllSelection)
	v1.DELETE("/selection", bulkHandler.ClearSelection)
	v1.POST("/bulk/favorite", bulkHandler.Favorite)
	v1.POST("/bulk/tags", bulkHandler.AddTags)
	v1.POST("/bulk/delete", bulkHandler.Delete)

	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.POST("/tasks/:id/toggle", taskHandler.ToggleComplete)
	v1.DELETE("/tasks/:id", taskHandler.Delete)

	v1.GET("/widgets", widgetHandler.List)
	v1.POST("/widgets", widgetHandler.Create)
	v1.PUT("/widgets/:id", widgetHandler.Update)
	v1.DELETE("/widgets/:id", widgetHandler.Delete)

	v1.GET("/connectors", connectorHandler.Status)
	v1.POST("/connectors/gmail", connectorHandler.ConnectGmail)
	v1.DELETE("/connectors/gmail", connectorHandler.DisconnectGmail)
	v1.POST("/connectors/twilio", connectorHandler.ConnectTwilio)
	v1.DELETE("/connectors/twilio", connectorHandler.DisconnectTwilio)
	v1.POST("/connectors/smtp", connectorHandler.ConnectSMTP)
	v1.DELETE("/connectors/smtp", connectorHandler.DisconnectSMTP)
	v1.POST("/connectors/manychat", connectorHandler.ConnectManyChat)
	v1.DELETE("/connectors/manychat", connectorHandler.DisconnectManyChat)
	v1.POST("/connectors/vbout", connectorHandler.ConnectVbout)
	v1.DELETE("/connectors/vbout", connectorHandler.DisconnectVbout)

	v1.GET("/stats", analyticsHandler.Stats)
	v1.GET("/stats/:key", analyticsHandler.Stat)

	v1.POST("/exports", exportHandler.Create)

	if aiService != nil {
		aiHandler := handlers.NewAIHandler(listingService, aiService)
		v1.POST("/listings/:id/ai/score", aiHandler.ScoreLead)
		v1.POST("/listings/:id/ai/valuation", aiHandler.ValueProperty)
	}

	// Cron jobs
	var cronStats *analytics.Service
	if redisClient != nil {
		cronStats = statsService
	}
	cronManager := jobs.NewCronManager(listingService, cronStats, log.Default())
	if cfg.ResyncEnabled {
		if err := cronManager.SetupJobs(); err != nil {
			log.Fatalf("❌ Failed to set up cron jobs: %v", err)
		}
		cronManager.Start()
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 ListingPro API starting on %s", address)
	log.Printf("📝 Log level: %s, Log format: %s", cfg.LogLevel, cfg.LogFormat)
	log.Printf("🏠 Seed catalogue: %d listings", cfg.SeedSize)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d)", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	if cfg.ResyncEnabled {
		cronManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
