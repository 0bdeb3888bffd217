package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/MPA-Digital-Solutions/TechMedis/config"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/controller"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/repository"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/app/service"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/db"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/middleware"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/router"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/scheduler"
	"github.com/MPA-Digital-Solutions/TechMedis/internal/storage"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", err)
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

	logger.Info("Starting TechMedis Backend Server", map[string]interface{}{
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

	// Redis backs the page cache; the site works without it.
	var invalidator service.PageInvalidator
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, page caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
		invalidator = redis.PageInvalidator{}
	}

	// Image storage
	productsDir := filepath.Join(cfg.Uploads.Dir, cfg.Uploads.ProductsDir)
	encoder := storage.NewWebPEncoder(cfg.Uploads.Quality)
	imageStore, err := storage.NewCarouselStore(productsDir, "/uploads/"+cfg.Uploads.ProductsDir, encoder)
	if err != nil {
		logger.Fatal("Failed to initialize image storage", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	clientRepo := repository.NewClientRepository(db.GetDB())
	configRepo := repository.NewConfigRepository(db.GetDB())
	subcategoryRepo := repository.NewSubcategoryRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(&cfg.Admin)
	configService := service.NewConfigService(configRepo)
	productService := service.NewProductService(productRepo, imageStore, invalidator)
	clientService := service.NewClientService(clientRepo, configService)

	// Initialize controllers
	secureCookie := cfg.Server.Environment == "production"
	authController := controller.NewAuthController(authService, secureCookie)
	productController := controller.NewProductController(productService, configService)
	categoryController := controller.NewCategoryController(subcategoryRepo)
	clientController := controller.NewClientController(clientService)
	configController := controller.NewConfigController(configService)
	revalidateController := controller.NewRevalidateController(redis.PageInvalidator{}, cfg.Revalidate.Token)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Admin.SessionSecret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		clientController,
		configController,
		revalidateController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Background sweep of stray temp image files
	tempSweeper := scheduler.NewTempSweepScheduler(imageStore)
	if err := tempSweeper.Start(); err != nil {
		logger.Warn("Failed to start temp file sweeper", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer tempSweeper.Stop()

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
