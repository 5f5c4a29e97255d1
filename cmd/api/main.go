package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"shopcart-api/internal/cache"
	"shopcart-api/internal/config"
	"shopcart-api/internal/handler"
	"shopcart-api/internal/middleware"
	"shopcart-api/internal/ratelimit"
	"shopcart-api/internal/repository"
	"shopcart-api/internal/router"
	"shopcart-api/internal/service"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting shopcart API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize catalog repository based on config
	var productRepo repository.ProductRepository
	switch cfg.Storage.CatalogDBType {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteProductRepository(cfg.Storage.CatalogDBPath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite catalog: %v", err)
		}
		productRepo = sqliteRepo
		log.Println("SQLite catalog repository initialized")
	default: // json
		productRepo = repository.NewJSONProductRepository(
			filepath.Join(cfg.Storage.DataDir, cfg.Storage.ProductsFile))
		log.Println("JSON catalog repository initialized")
	}
	defer productRepo.Close()

	// Initialize user repository; MySQL is optional and degrades to the
	// JSON store when unreachable.
	var userRepo repository.UserRepository
	if cfg.UserDB.Type == "mysql" {
		mysqlDB, err := sql.Open("mysql", cfg.UserDB.DSN())
		if err == nil {
			mysqlDB.SetMaxOpenConns(10)
			mysqlDB.SetMaxIdleConns(5)
			mysqlDB.SetConnMaxLifetime(5 * time.Minute)
			if err = mysqlDB.Ping(); err != nil {
				mysqlDB.Close()
			}
		}
		if err != nil {
			log.Printf("Warning: MySQL connection failed, falling back to JSON user store: %v", err)
		} else {
			mysqlRepo := repository.NewMySQLUserRepository(mysqlDB)
			if err := mysqlRepo.EnsureSchema(context.Background()); err != nil {
				log.Fatalf("Failed to prepare MySQL user schema: %v", err)
			}
			userRepo = mysqlRepo
			log.Println("MySQL user repository initialized")
		}
	}
	if userRepo == nil {
		userRepo = repository.NewJSONUserRepository(
			filepath.Join(cfg.Storage.DataDir, cfg.Storage.UsersFile))
		log.Println("JSON user repository initialized")
	}
	defer userRepo.Close()

	cartRepo := repository.NewJSONCartRepository(
		filepath.Join(cfg.Storage.DataDir, cfg.Storage.CartsFile))
	defer cartRepo.Close()

	// Initialize session store; Redis is optional and degrades to the
	// in-memory cache when unreachable.
	var sessionStore cache.Cache
	if cfg.Sessions.StoreType == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Sessions.RedisAddress(),
			Password: cfg.Sessions.RedisPassword,
			DB:       cfg.Sessions.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Printf("Warning: Redis connection failed, using in-memory session store: %v", err)
			redisClient.Close()
		} else {
			sessionStore = cache.NewRedisCache(redisClient)
			log.Println("Redis session store initialized")
		}
	}
	if sessionStore == nil {
		sessionStore = cache.NewMemoryCache()
		log.Println("In-memory session store initialized")
	}
	defer sessionStore.Close()

	// Initialize services. Stock mutations and checkout share one
	// serialization point so the two-pass checkout cannot be invalidated
	// mid-flight by a concurrent stock edit.
	var stockMu sync.Mutex

	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(sessionStore, cfg.Sessions.TTL)
	catalogService := service.NewCatalogService(productRepo, &stockMu)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(cartRepo, productRepo, &stockMu)

	// Seed the default admin account
	if err := authService.EnsureAdmin(context.Background(), cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(cfg.App.Version)
	authHandler := handler.NewAuthHandler(authService, sessionService)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	// Create middleware with injected dependencies
	authMiddleware := middleware.NewAuthMiddleware(middleware.AuthConfig{
		Auth:     authService,
		Sessions: sessionService,
	})
	loginLimiter := ratelimit.New(cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(loginLimiter)

	// Create router
	r := router.New(router.Config{
		Health:         healthHandler,
		Auth:           authHandler,
		Products:       productHandler,
		Cart:           cartHandler,
		Checkout:       checkoutHandler,
		AuthMiddleware: authMiddleware,
		RateLimit:      rateLimitMiddleware,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
