package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cadencia/cadencia-api/docs"
	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/config"
	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/http/handler"
	"github.com/cadencia/cadencia-api/internal/http/middleware"
	"github.com/cadencia/cadencia-api/internal/http/router"
	"github.com/cadencia/cadencia-api/internal/logger"
	"github.com/cadencia/cadencia-api/internal/repository"
	"github.com/cadencia/cadencia-api/internal/service"
	"go.uber.org/zap"
)

// @title Cadencia API
// @version 1.0
// @description Multi-tenant sales lead cadence API with gamification and team reporting

// @contact.name API Support
// @contact.email suporte@cadencia.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token (also accepted via the session cookie)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Configure Swagger host based on environment
	if cfg.App.Environment == "development" {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.App.Port)
	}

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Every repository call goes through the retryer so transient
	// connection drops surface as at most a short delay
	retryer := database.NewRetryer(cfg.Database.RetryAttempts, cfg.Database.RetryBaseDelayDuration(), log)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, retryer)
	leadRepo := repository.NewLeadRepository(db, retryer)
	briefingRepo := repository.NewBriefingRepository(db, retryer)
	gamificationRepo := repository.NewGamificationRepository(db, retryer)
	metricsRepo := repository.NewMetricsRepository(db, retryer)

	// Session tokens
	sessions := &auth.Manager{
		Secret:     []byte(cfg.Auth.Secret),
		SessionTTL: cfg.Auth.SessionTTLDuration(),
		Issuer:     cfg.App.Name,
	}

	// Initialize services
	userService := service.NewUserService(userRepo, sessions, log)
	leadService := service.NewLeadService(leadRepo, log)
	briefingService := service.NewBriefingService(briefingRepo, leadRepo, log)
	gamificationService := service.NewGamificationService(gamificationRepo, log)
	metricsService := service.NewMetricsService(metricsRepo, log)
	teamService := service.NewTeamService(userRepo, leadRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(sessions, cfg.Auth.CookieName, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userService, &cfg.Auth, log)
	leadHandler := handler.NewLeadHandler(leadService, log)
	briefingHandler := handler.NewBriefingHandler(briefingService, log)
	gamificationHandler := handler.NewGamificationHandler(gamificationService, log)
	metricsHandler := handler.NewMetricsHandler(metricsService, log)
	adminHandler := handler.NewAdminHandler(userService, log)
	leaderHandler := handler.NewLeaderHandler(teamService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		leadHandler,
		briefingHandler,
		gamificationHandler,
		metricsHandler,
		adminHandler,
		leaderHandler,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
