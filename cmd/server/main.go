package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	catalogapp "github.com/optivista/backend/internal/application/catalog"
	consultationapp "github.com/optivista/backend/internal/application/consultation"
	engagementapp "github.com/optivista/backend/internal/application/engagement"
	identityapp "github.com/optivista/backend/internal/application/identity"
	mediaapp "github.com/optivista/backend/internal/application/media"
	orderapp "github.com/optivista/backend/internal/application/order"
	"github.com/optivista/backend/internal/domain/catalog"
	"github.com/optivista/backend/internal/infrastructure/auth"
	"github.com/optivista/backend/internal/infrastructure/cache"
	"github.com/optivista/backend/internal/infrastructure/config"
	"github.com/optivista/backend/internal/infrastructure/logger"
	"github.com/optivista/backend/internal/infrastructure/persistence"
	"github.com/optivista/backend/internal/infrastructure/storage"
	"github.com/optivista/backend/internal/infrastructure/telemetry"
	"github.com/optivista/backend/internal/interfaces/http/handler"
	"github.com/optivista/backend/internal/interfaces/http/middleware"
	"github.com/optivista/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", version),
		zap.String("env", cfg.App.Env))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	tp, err := telemetry.NewTracerProvider(context.Background(), &cfg.Telemetry, cfg.App.Name, version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	if err := tp.RegisterDBTracing(db.DB, cfg.Database.DBName); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	var productCache catalog.ProductCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisProductCache(&cfg.Redis, cache.WithCacheLogger(log))
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisCache.Close() }()
		productCache = redisCache
		log.Info("Product cache: redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		memCache := cache.NewMemoryProductCache(cfg.Redis.TTL)
		defer func() { _ = memCache.Close() }()
		productCache = memCache
		log.Info("Product cache: in-memory")
	}

	var objectStorage mediaapp.ObjectStorageService
	if cfg.Storage.AccessKeyID != "" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiry))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Storage
		log.Info("Object storage: s3", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		// validate() rejects missing credentials in production, so the
		// stub is only ever reachable in development and test.
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage credentials not configured, using in-memory stub")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	consultationRepo := persistence.NewGormConsultationRepository(db.DB)
	feedbackRepo := persistence.NewGormFeedbackRepository(db.DB)
	arSessionRepo := persistence.NewGormARSessionRepository(db.DB)
	fileRepo := persistence.NewGormFileRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.AuthServiceConfig{
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		LockDuration:     cfg.Auth.LockDuration,
	}, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, productCache, log)
	orderService := orderapp.NewOrderService(orderRepo, productRepo, productCache, log)
	consultationService := consultationapp.NewConsultationService(consultationRepo, userRepo, log)
	engagementService := engagementapp.NewEngagementService(feedbackRepo, arSessionRepo, productRepo, log)
	uploadService := mediaapp.NewUploadService(fileRepo, objectStorage, cfg.Upload.MaxFileSize, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	consultationHandler := handler.NewConsultationHandler(consultationService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	mediaHandler := handler.NewMediaHandler(uploadService)
	systemHandler := handler.NewSystemHandler(version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tp.IsEnabled() {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		// Tighter limit on credential endpoints to slow brute forcing.
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authRateLimit := middleware.RateLimitByKey(authLimiter, func(c *gin.Context) string {
			return "auth:" + c.ClientIP()
		})
		engine.Use(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
				authRateLimit(c)
				return
			}
			c.Next()
		})
	}

	engine.GET("/health", healthHandler(db, log))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/system/info")
	jwtConfig.Logger = log

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Use(middleware.JWTAuthWithConfig(jwtConfig)).
		Register(authHandler).
		Register(userHandler).
		Register(productHandler).
		Register(orderHandler).
		Register(consultationHandler).
		Register(engagementHandler).
		Register(mediaHandler).
		Register(systemHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

// healthHandler reports liveness including database reachability. It is
// mounted outside the versioned API so load balancers can probe it without
// credentials.
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := db.Ping(); err != nil {
			log.Warn("Health check: database unreachable", zap.Error(err))
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		body := gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	}
}
