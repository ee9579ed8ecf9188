package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/config"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/handler"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/identity"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/infrastructure/database"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/logger"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/metrics"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/middleware"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/repository"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/service"
	"github.com/kimbugp/ah-haven-space-sprinters/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	// Initialize repositories and identity resolver
	articleRepo := repository.NewPostgresArticleRepository(pool)
	profileRepo := repository.NewPostgresProfileRepository(pool)
	resolver := identity.NewPostgresResolver(pool)

	// Initialize validator and services
	v := validator.NewValidator()
	articleService := service.NewArticleService(articleRepo, profileRepo, v)

	// Initialize handlers
	articleHandler := handler.NewArticleHandler(articleService)
	healthHandler := handler.NewHealthHandler(pool)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(gin.Logger())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes. Reads are open; mutations require an authenticated caller
	// and get their ownership check inside the service.
	api := router.Group("/api")
	{
		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/:slug", articleHandler.Get)

			authed := articles.Group("", middleware.Auth(resolver, true))
			{
				authed.POST("", articleHandler.Create)
				authed.PATCH("/:slug", articleHandler.Update)
				authed.PUT("/:slug", articleHandler.Update)
				authed.DELETE("/:slug", articleHandler.Delete)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	// Shutdown HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
