package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/printmoa-backend/config"
	"github.com/ikkim/printmoa-backend/internal/app/controller"
	"github.com/ikkim/printmoa-backend/internal/app/repository"
	"github.com/ikkim/printmoa-backend/internal/app/service"
	"github.com/ikkim/printmoa-backend/internal/app/variation"
	"github.com/ikkim/printmoa-backend/internal/db"
	"github.com/ikkim/printmoa-backend/internal/middleware"
	"github.com/ikkim/printmoa-backend/internal/router"
	"github.com/ikkim/printmoa-backend/internal/scheduler"
	"github.com/ikkim/printmoa-backend/pkg/logger"
	redispkg "github.com/ikkim/printmoa-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PRINTMOA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize redis-backed quote cache (optional)
	var quoteCache *service.QuoteCache
	if cfg.Redis.Enabled {
		if err := redispkg.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, quote caching disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redispkg.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
			quoteCache = service.NewQuoteCache(redispkg.GetClient(), cfg.Quote.CacheTTL)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	flashSaleRepo := repository.NewFlashSaleRepository(db.GetDB())

	// Initialize services
	idGen := variation.NewUUIDGenerator()
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, idGen)
	variationService := service.NewVariationService(productRepo, idGen, quoteCache)
	quoteService := service.NewQuoteService(productRepo, quoteCache)
	flashSaleService := service.NewFlashSaleService(flashSaleRepo, productRepo, quoteCache)
	exportService := service.NewExportService(productRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	variationController := controller.NewVariationController(variationService, exportService)
	quoteController := controller.NewQuoteController(quoteService)
	flashSaleController := controller.NewFlashSaleController(flashSaleService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		variationController,
		quoteController,
		flashSaleController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the flash sale sweep
	flashSaleScheduler := scheduler.NewFlashSaleScheduler(flashSaleService, cfg.Scheduler.FlashSaleSpec)
	if err := flashSaleScheduler.Start(); err != nil {
		logger.Fatal("Failed to start flash sale scheduler", err)
	}
	defer flashSaleScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
