package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/ourlittleplanet/planet-service/internal/config"
	"github.com/ourlittleplanet/planet-service/internal/handler"
	"github.com/ourlittleplanet/planet-service/internal/handler/middleware"
	"github.com/ourlittleplanet/planet-service/internal/repository/postgres"
	"github.com/ourlittleplanet/planet-service/internal/service"
	"github.com/ourlittleplanet/planet-service/pkg/jwt"
	"github.com/ourlittleplanet/planet-service/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database connection: %v", err)
		}
	}()
	log.Println("✓ Database connection established")

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}()
	log.Println("✓ Redis connection established")

	// Initialize validator
	validate := validator.NewValidator()

	// Initialize repositories
	coupleRepo := postgres.NewCoupleRepository(db)
	wishRepo := postgres.NewWishRepository(db)
	activityRepo := postgres.NewActivityRepository(db)
	quoteRepo := postgres.NewQuoteRepository(db)

	// Initialize JWT token service; the signing material is loaded once
	// here and injected, never read from ambient state
	tokenService := jwt.NewTokenService(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
	)

	// Initialize services
	authService := service.NewAuthService(coupleRepo, tokenService)
	wishService := service.NewWishService(wishRepo)
	statsService := service.NewStatsService(coupleRepo, wishRepo, activityRepo)
	quoteService := service.NewQuoteService(quoteRepo, redisClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, validate)
	wishHandler := handler.NewWishHandler(wishService, validate)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Little Planet API v1.0",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware())

	// Setup guards
	requireAuth := middleware.RequireAuth(tokenService, coupleRepo)
	optionalAuth := middleware.OptionalAuth(tokenService, coupleRepo)
	requireWishOwnership := middleware.RequireWishOwnership(wishRepo)

	// Setup routes
	handler.SetupRoutes(
		app,
		authHandler,
		wishHandler,
		quoteHandler,
		statsHandler,
		healthHandler,
		requireAuth,
		optionalAuth,
		requireWishOwnership,
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		log.Printf("🚀 Server starting on http://localhost%s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		if err := app.Listen(addr); err != nil {
			log.Printf("❌ Server failed to start: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("⏳ Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}

// initDB initializes the PostgreSQL connection with retry logic. The
// pool is sized once here and not resized at runtime.
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

// initRedis initializes the Redis client used by the quote cache
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
