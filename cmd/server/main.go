package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poolride/internal/config"
	"poolride/internal/handlers"
	"poolride/internal/middleware"
	"poolride/internal/repositories/mongodb"
	"poolride/internal/services"
	"poolride/pkg/auth"
	"poolride/pkg/cache"
	"poolride/pkg/database"
	"poolride/pkg/logger"
	"poolride/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx, db.Database); err != nil {
		cancel()
		log.WithError(err).Fatal("Failed to create indexes")
	}
	cancel()

	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, running without cache")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	verifier, err := buildVerifier(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure token verification")
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	driverRepo := mongodb.NewDriverRepository(db.Database)
	var rideCache mongodb.Cache
	if redisCache != nil {
		rideCache = redisCache
	}
	rideRepo := mongodb.NewRideRepository(db.Database, rideCache)
	groupRepo := mongodb.NewGroupRepository(db.Database)
	historyRepo := mongodb.NewRideHistoryRepository(db.Database)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)

	// Services
	recorder := services.NewRecorder(historyRepo, notificationRepo, groupRepo, log)
	userService := services.NewUserService(userRepo, driverRepo, rideRepo, log)
	driverService := services.NewDriverService(driverRepo, userRepo, log)
	rideService := services.NewRideService(rideRepo, userRepo, driverRepo, recorder, log)
	reviewService := services.NewReviewService(rideRepo, driverRepo, userRepo, log)
	groupService := services.NewGroupService(groupRepo, userRepo, notificationRepo, log)
	historyService := services.NewHistoryService(historyRepo, userRepo)

	// Handlers
	rideHandler := handlers.NewRideHandler(rideService)
	driverHandler := handlers.NewDriverHandler(driverService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	userHandler := handlers.NewUserHandler(userService)
	groupHandler := handlers.NewGroupHandler(groupService)
	historyHandler := handlers.NewHistoryHandler(historyService)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if err := db.Ping(); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
		}
		c.JSON(http.StatusOK, status)
	})

	api := router.Group("/api")
	api.Use(middleware.AuthRequired(verifier, log))
	routes.SetupRideRoutes(api, rideHandler, reviewHandler)
	routes.SetupReviewRoutes(api, reviewHandler)
	routes.SetupDriverRoutes(api, driverHandler)
	routes.SetupUserRoutes(api, userHandler)
	routes.SetupGroupRoutes(api, groupHandler)
	routes.SetupHistoryRoutes(api, historyHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}

func buildVerifier(cfg *config.Config, log *logger.Logger) (auth.TokenVerifier, error) {
	switch cfg.Security.AuthProvider {
	case "jwt":
		log.Warn("Using local JWT verification; not for production")
		return auth.NewJWTVerifier(cfg.Security.JWTSecret), nil
	default:
		return auth.NewFirebaseVerifier(context.Background(), cfg.Security.FirebaseCredentialsFile)
	}
}
