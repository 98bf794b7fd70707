package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"notesaas/internal/caching"
	"notesaas/internal/config"
	"notesaas/internal/handlers"
	"notesaas/internal/jobs/background"
	"notesaas/internal/middleware"
	"notesaas/internal/repositories"
	"notesaas/internal/services"
	"notesaas/pkg/database"
	"notesaas/pkg/logger"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.Database.URL == "" {
		zlog.Fatal("DATABASE_URL environment variable is required")
	}
	if cfg.JWT.Secret == "" {
		zlog.Fatal("JWT_SECRET environment variable is required")
	}

	// Database connection pool
	pool, err := database.NewPool(context.Background(), cfg.Database.URL)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Cache service
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	tenantRepo := repositories.NewTenantRepo(pool)
	noteRepo := repositories.NewNoteRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tenantSvc := services.NewTenantService(tenantRepo)
	noteSvc := services.NewNoteService(noteRepo, tenantRepo, cfg.Quota.FreeNoteLimit)
	exportSvc, err := services.NewExportService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.ExportBucket, noteRepo)
	if err != nil {
		zlog.Fatal("Failed to initialize export service", zap.Error(err))
	}

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, tenantSvc, zlog)
	noteHandlers := handlers.NewNoteHandlers(noteSvc, exportSvc, tenantSvc, zlog)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc, zlog)
	userHandlers := handlers.NewUserHandlers(tenantSvc, zlog)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(exportSvc, tenantRepo, zlog)
	if err != nil {
		zlog.Fatal("Failed to create job scheduler", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())
	e.Use(logger.RequestLogger(zlog))
	e.Use(middleware.Metrics)
	e.Use(middleware.Auth(authSvc, userRepo))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes
	api := e.Group("/api")
	api.GET("/health", healthHandlers.HealthCheck)
	api.GET("/health/ready", healthHandlers.ReadinessCheck)

	api.POST("/auth/login", authHandlers.Login)
	api.POST("/auth/refresh", authHandlers.Refresh)
	api.POST("/auth/logout", authHandlers.Logout)

	api.GET("/notes", noteHandlers.ListNotes)
	api.POST("/notes", noteHandlers.CreateNote)
	api.POST("/notes/export", noteHandlers.ExportNotes)
	api.DELETE("/notes/:id", noteHandlers.DeleteNote)

	api.POST("/tenants/:slug/upgrade", tenantHandlers.Upgrade)
	api.GET("/user/profile", userHandlers.Profile)

	zlog.Info("notesaas server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		zlog.Fatal("Server stopped", zap.Error(err))
	}
}
