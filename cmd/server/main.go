package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Excommunicode/ShareHub/internal/application"
	"github.com/Excommunicode/ShareHub/internal/config"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/handler"
	"github.com/Excommunicode/ShareHub/internal/metrics"
	"github.com/Excommunicode/ShareHub/internal/platform/database"
	"github.com/Excommunicode/ShareHub/internal/platform/health"
	"github.com/Excommunicode/ShareHub/internal/platform/kafka"
	"github.com/Excommunicode/ShareHub/internal/platform/logger"
	"github.com/Excommunicode/ShareHub/internal/platform/middleware"
	"github.com/Excommunicode/ShareHub/internal/repository"
)

const serviceName = "sharehub"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	metrics.Register()

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.ClientID, log)
	defer func() { _ = kafkaProducer.Close() }()

	healthHandler := health.NewHandler(db, serviceName)

	// Initialize repositories
	var userRepo userDomain.UserRepository = repository.NewGormUserRepository(db)
	if cfg.RedisConfig.Addr != "" {
		redisClient := repository.NewRedisClient(cfg.RedisConfig.Addr, cfg.RedisConfig.Password, cfg.RedisConfig.DB)
		defer func() { _ = redisClient.Close() }()

		cached := repository.NewCachedUserRepository(userRepo, redisClient, cfg.RedisConfig.UserTTL, log)
		healthHandler.AddChecker("redis", cached.Ping)
		userRepo = cached
		log.Info("user cache enabled", zap.String("redis_addr", cfg.RedisConfig.Addr))
	}
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	tx := repository.NewGormTransactor(db)

	// Initialize application services
	userService := application.NewUserService(userRepo, tx, log)
	bookingService := application.NewBookingService(bookingRepo, itemRepo, userRepo, tx, kafkaProducer, log)
	itemService := application.NewItemService(itemRepo, userRepo, bookingRepo, commentRepo, requestRepo, tx, kafkaProducer, log)
	commentService := application.NewCommentService(commentRepo, bookingRepo, itemRepo, userRepo, tx, kafkaProducer, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, tx, kafkaProducer, log)

	// Setup Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))

	// Register health check and metrics routes
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	api := &router.RouterGroup
	handler.NewUserHandler(userService).RegisterRoutes(api)
	handler.NewItemHandler(itemService, commentService).RegisterRoutes(api)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api)
	handler.NewRequestHandler(requestService).RegisterRoutes(api)
	handler.NewAdminBookingHandler(bookingService).RegisterRoutes(api)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
