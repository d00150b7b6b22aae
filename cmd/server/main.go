package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/agent"
	"github.com/jayyu23/daNomNoms-monad/internal/api"
	"github.com/jayyu23/daNomNoms-monad/internal/config"
	"github.com/jayyu23/daNomNoms-monad/internal/doordash"
	"github.com/jayyu23/daNomNoms-monad/internal/repository/postgres"
	"github.com/jayyu23/daNomNoms-monad/internal/repository/rediscache"
	"github.com/jayyu23/daNomNoms-monad/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting daNomNoms order API",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories, with an optional Redis read cache in front
	repos := postgres.NewRepositories(db, logger)
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repos.Catalog = rediscache.NewCatalogCache(repos.Catalog, redisClient, cfg.Redis.CacheTTL, logger)
		logger.Info("Catalog cache enabled", zap.String("redis_addr", cfg.Redis.Addr))
	}

	// Initialize services
	carts, err := service.NewCartService(repos.Catalog, cfg.TaxRate, logger)
	if err != nil {
		logger.Fatal("Failed to initialize cart service", zap.Error(err))
	}

	// DoorDash credentials are validated here, before any request comes in
	authenticator, err := doordash.NewAuthenticator(cfg.DoorDash)
	if err != nil {
		logger.Fatal("Failed to initialize DoorDash authenticator", zap.Error(err))
	}
	provider := doordash.NewClient(cfg.DoorDash, authenticator, logger)
	deliveries := service.NewDeliveryService(provider, logger)

	// Conversational ordering agent; runs degraded without an API key
	agents := agent.NewService(cfg.OpenAI, repos.Catalog, carts, deliveries, logger)
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPEN_AI_API_KEY is not set; agent chat will reject requests")
	}

	// Initialize router
	router := api.NewRouter(cfg, repos, carts, deliveries, agents, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
