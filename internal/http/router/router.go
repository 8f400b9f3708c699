package router

import (
	"encoding/json"
	"net/http"

	"github.com/cadencia/cadencia-api/internal/auth"
	"github.com/cadencia/cadencia-api/internal/config"
	"github.com/cadencia/cadencia-api/internal/database"
	"github.com/cadencia/cadencia-api/internal/http/handler"
	"github.com/cadencia/cadencia-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/cadencia/cadencia-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	authHandler         *handler.AuthHandler
	leadHandler         *handler.LeadHandler
	briefingHandler     *handler.BriefingHandler
	gamificationHandler *handler.GamificationHandler
	metricsHandler      *handler.MetricsHandler
	adminHandler        *handler.AdminHandler
	leaderHandler       *handler.LeaderHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	leadHandler *handler.LeadHandler,
	briefingHandler *handler.BriefingHandler,
	gamificationHandler *handler.GamificationHandler,
	metricsHandler *handler.MetricsHandler,
	adminHandler *handler.AdminHandler,
	leaderHandler *handler.LeaderHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		authHandler:         authHandler,
		leadHandler:         leadHandler,
		briefingHandler:     briefingHandler,
		gamificationHandler: gamificationHandler,
		metricsHandler:      metricsHandler,
		adminHandler:        adminHandler,
		leaderHandler:       leaderHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/auth/register", rt.authHandler.Register)
		r.Post("/auth/login", rt.authHandler.Login)
		r.Post("/auth/logout", rt.authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Get("/me", rt.authHandler.Me)

			// Leads
			r.Route("/leads", func(r chi.Router) {
				r.Get("/", rt.leadHandler.ListLeads)
				r.Post("/", rt.leadHandler.CreateLead)
				r.Get("/{id}", rt.leadHandler.GetLead)
				r.Put("/{id}", rt.leadHandler.UpdateLead)
				r.Delete("/{id}", rt.leadHandler.DeleteLead)
				r.Post("/{id}/contato", rt.leadHandler.RegisterContact)
			})

			// Briefings
			r.Route("/briefings", func(r chi.Router) {
				r.Post("/", rt.briefingHandler.CreateBriefing)
				r.Get("/lead/{leadId}", rt.briefingHandler.ListBriefingsByLead)
			})

			// Gamification
			r.Route("/gamificacao", func(r chi.Router) {
				r.Get("/", rt.gamificationHandler.GetGamification)
				r.Put("/", rt.gamificationHandler.UpdateGamification)
				r.Post("/pontos", rt.gamificationHandler.AddPoints)
				r.Put("/missoes/{id}", rt.gamificationHandler.CompleteMission)
			})

			// Daily metrics
			r.Route("/metricas", func(r chi.Router) {
				r.Get("/", rt.metricsHandler.GetMetrics)
				r.Put("/", rt.metricsHandler.UpdateMetrics)
				r.Post("/increment", rt.metricsHandler.IncrementMetrics)
			})

			// Team views (leaders and admins)
			r.Route("/leader", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireTeamAccess)

				r.Get("/team", rt.leaderHandler.Team)
				r.Get("/summary", rt.leaderHandler.Summary)
				r.Get("/seller/{sellerId}", rt.leaderHandler.SellerDetail)
			})

			// User administration (admins only)
			r.Route("/admin", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)

				r.Get("/users", rt.adminHandler.ListUsers)
				r.Patch("/users/{id}/role", rt.adminHandler.UpdateRole)
			})
		})
	})

	return r
}
