package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Para-FR/youtube-linktree-demo/internal/config"
	"github.com/Para-FR/youtube-linktree-demo/internal/database"
	"github.com/Para-FR/youtube-linktree-demo/internal/handlers"
	"github.com/Para-FR/youtube-linktree-demo/internal/middleware"
	"github.com/Para-FR/youtube-linktree-demo/internal/migrations"
	"github.com/Para-FR/youtube-linktree-demo/internal/models"
	"github.com/Para-FR/youtube-linktree-demo/internal/routes"
	"github.com/Para-FR/youtube-linktree-demo/pkg/logger"
)

func main() {
	// Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting linktree backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect Database + Redis
	database.Connect()
	database.InitRedis()

	// Migrations: tables first, then raw-SQL indexes
	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(&models.User{}, &models.Link{}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate tables")
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// Init OAuth
	handlers.InitOAuthConfig()

	// Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.GeneralRateLimit())

	// Register Routes
	api := r.Group("/api")
	api.Use(middleware.OptionalAuthMiddleware())
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		routes.RegisterAuthRoutes(auth)

		routes.RegisterLinkRoutes(api)
		routes.RegisterProfileRoutes(api)
		routes.RegisterPublicRoutes(api)
	}

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
