package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/stwms/workforce-portal/internal/api/handler"
	"github.com/stwms/workforce-portal/internal/api/middleware"
	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
	"github.com/stwms/workforce-portal/internal/core/service"
	"github.com/stwms/workforce-portal/internal/infrastructure/config"
	"github.com/stwms/workforce-portal/internal/infrastructure/session"
	"github.com/stwms/workforce-portal/internal/upstream"
	"github.com/stwms/workforce-portal/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	log := logger.Get()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	backend := upstream.New(cfg.BackendURL, 30*time.Second, log)

	store := buildStore(rdb, cfg.SessionTTL)
	cache := service.NewViewCache(cfg.Cache.Size, cfg.Cache.TTL)

	sessionSvc := service.NewSessionService(backend, store, cfg.SessionTTL, log)
	taskSvc := service.NewTaskService(backend, cache, log)
	adminSvc := service.NewAdminService(backend, cache, log)
	analyticsSvc := service.NewAnalyticsService(backend, cache, log)

	authHandler := handler.NewAuthHandler(sessionSvc, cfg.SessionSecret)
	meHandler := handler.NewMeHandler()
	taskHandler := handler.NewTaskHandler(taskSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)

	// --- Public routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/signup", authHandler.Signup)
	e.POST("/logout", authHandler.Logout)

	// --- Health probes and metrics (no session required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Guarded routes: any authenticated role ---
	guard := middleware.Session(sessionSvc, cfg.SessionSecret)

	authed := e.Group("", guard)
	authed.GET("/me", meHandler.Me)
	authed.GET("/dashboard", analyticsHandler.Dashboard)
	authed.GET("/tasks", taskHandler.Board)
	authed.GET("/tasks/:id", taskHandler.Detail)
	authed.POST("/tasks", taskHandler.Create)
	authed.POST("/tasks/:id/assign/:employeeID", taskHandler.Assign)
	authed.PUT("/tasks/:id/status", taskHandler.UpdateStatus)

	// --- Manager routes ---
	managed := e.Group("", guard, middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin))
	managed.GET("/analytics", analyticsHandler.Analytics)

	// --- Admin routes ---
	admin := e.Group("/admin", guard, middleware.RequireRoles(domain.RoleAdmin))
	admin.GET("/users", adminHandler.Overview)
	admin.GET("/users/available", adminHandler.AvailableUsers)
	admin.PUT("/users/:id/roles", adminHandler.UpdateRoles)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/teams", adminHandler.Teams)
	admin.POST("/teams", adminHandler.CreateTeam)
	admin.DELETE("/teams/:id", adminHandler.DeleteTeam)
	admin.GET("/teams/:id/progress", adminHandler.TeamProgress)
	admin.POST("/teams/:id/members/:userID", adminHandler.AddMember)
	admin.DELETE("/teams/:id/members/:userID", adminHandler.RemoveMember)
	admin.GET("/audit", adminHandler.Audit)

	return e
}

// buildStore picks the session store backing. Without a Redis client the
// portal falls back to the in-process store, which is fine for development
// and single-instance deployments.
func buildStore(rdb *redis.Client, ttl time.Duration) ports.SessionStore {
	if rdb == nil {
		return session.NewMemoryStore()
	}
	return session.NewRedisStore(rdb, ttl)
}
