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

	"cartBoost/app/echo-server/router"
	"cartBoost/business/bundles"
	"cartBoost/business/manualbundles"
	"cartBoost/business/settings"
	"cartBoost/internal/middleware"
	redisRepo "cartBoost/internal/repository/redis"
	"cartBoost/internal/repository/shopify"
	"cartBoost/internal/rest"
	"cartBoost/pkg/config"
	"cartBoost/pkg/database"
	"cartBoost/pkg/logger"
	"cartBoost/pkg/metrics"

	psqlRepo "cartBoost/internal/repository/postgres"
	redisdb "cartBoost/pkg/database/redis"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting CartBoost", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init repo
	manualBundleRepo := psqlRepo.NewManualBundleRepository(db)
	settingsRepo := psqlRepo.NewSettingsRepository(db)

	// Init service
	settingsService := settings.NewSettingsService(settingsRepo, cfg.Shopify.TokenEncryptionKey)
	manualBundleService := manualbundles.NewManualBundleService(manualBundleRepo)

	catalogRepo := shopify.NewCatalogRepository(
		&http.Client{Timeout: 10 * time.Second},
		settingsService,
		shopify.CatalogConfig{APIVersion: cfg.Shopify.APIVersion},
	)

	bundleService := bundles.NewBundleService(
		bundles.NewManualResolver(manualBundleRepo, catalogRepo),
		bundles.NewPlatformResolver(catalogRepo),
		bundles.NewSimilarityResolver(catalogRepo),
	)

	// Redis is a cache, not a dependency: run without it if unreachable
	var bundleCache rest.BundleCache
	if redisClient, err := redisdb.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, bundle caching disabled", "error", err)
	} else {
		defer func() { _ = redisdb.CloseRedisClient(redisClient) }()
		bundleCache = redisRepo.NewBundleCacheRepository(redisClient, 5*time.Minute)
	}

	// Init handler
	bundleHandler := rest.NewBundleHandler(bundleService, settingsService, bundleCache)
	manualBundleHandler := rest.NewManualBundleHandler(manualBundleService)
	settingsHandler := rest.NewSettingsHandler(settingsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupBundleRoutes(api, bundleHandler)
	router.SetupManualBundleRoutes(api, manualBundleHandler)
	router.SetupSettingsRoutes(api, settingsHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
