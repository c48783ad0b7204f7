package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ico-admin.backend/internal/config"
	"ico-admin.backend/internal/infrastructure/jobs"
	"ico-admin.backend/internal/infrastructure/mailer"
	"ico-admin.backend/internal/infrastructure/repositories"
	"ico-admin.backend/internal/infrastructure/storage"
	"ico-admin.backend/internal/interfaces/http/handlers"
	"ico-admin.backend/internal/interfaces/http/middleware"
	"ico-admin.backend/internal/usecases"
	"ico-admin.backend/pkg/jwt"
	"ico-admin.backend/pkg/logger"
	"ico-admin.backend/pkg/metrics"
	"ico-admin.backend/pkg/ratelimit"
	"ico-admin.backend/pkg/redis"
	"ico-admin.backend/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), repositories.GormConfig())
	}
	newSessionCache = redis.NewSessionCache
	newPresigner    = storage.NewS3Presigner
	runServer       = func(srv *http.Server) error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
	getStdDB = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	dotenvErr := loadDotenv()

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))
	if dotenvErr != nil {
		logger.Info(ctx, "No .env file found, using environment variables")
	}

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	if redis.Enabled() {
		logger.Info(ctx, "Redis initialized")
	} else {
		logger.Warn(ctx, "Redis disabled, sessions are checked against the database only")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database")
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.PreviousSecrets, cfg.JWT.Expiry, cfg.JWT.NonceExpiry)

	adminRepo := repositories.NewAdminRepository(db)
	permissionRepo := repositories.NewPermissionRepository(db)
	sessionRepo := repositories.NewSessionTokenRepository(db)
	userRepo := repositories.NewUserRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// The interfaces stay nil when the backing service is off.
	var sessionCache usecases.SessionCache
	var limiter ratelimit.Limiter
	if redis.Enabled() {
		cache, err := newSessionCache(cfg.Security.SessionEncryptionKey)
		if err != nil {
			return fmt.Errorf("failed to initialize session cache: %w", err)
		}
		sessionCache = cache
		limiter = ratelimit.NewRedisLimiter(redis.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Prefix)
	} else {
		limiter = ratelimit.NewMemory(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	var presigner usecases.Presigner
	p, err := newPresigner(storage.Config{
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		PresignExpiry:   cfg.Storage.PresignExpiry,
	})
	switch {
	case errors.Is(err, storage.ErrNoBucket):
		logger.Warn(ctx, "Object storage not configured, document URLs will be empty")
	case err != nil:
		return fmt.Errorf("failed to initialize object storage: %w", err)
	default:
		presigner = p
	}

	notifier := mailer.New(&mailer.Config{
		Host:        cfg.Mail.Host,
		Port:        cfg.Mail.Port,
		Username:    cfg.Mail.Username,
		Password:    cfg.Mail.Password,
		FromName:    cfg.Mail.FromName,
		FromAddress: cfg.Mail.FromAddress,
		Timeout:     cfg.Mail.Timeout,
	})

	validator := validation.Default()

	authUsecase := usecases.NewAuthUsecase(adminRepo, sessionRepo, jwtService, sessionCache, notifier, validator, cfg.Security.BcryptCost)
	adminUsecase := usecases.NewAdminUsecase(adminRepo, permissionRepo, validator, cfg.Security.BcryptCost)
	userUsecase := usecases.NewUserUsecase(userRepo, txRepo, uow, notifier, presigner, validator)
	reportUsecase := usecases.NewReportUsecase(txRepo, saleRepo, validator, cfg.Reporting.RequireSaleFlags)

	registry := metrics.NewRegistry()

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cleanupJob := jobs.NewSessionTokenCleanupJob(sessionRepo, cfg.Jobs.SessionCleanupInterval)
	go cleanupJob.Start(jobCtx)

	r, err := newEngine(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.TimeoutMiddleware(cfg.Server.RequestTimeout))

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r, registry)
	registerRoutes(r, routeDeps{
		authHandler:        handlers.NewAuthHandler(authUsecase),
		adminHandler:       handlers.NewAdminHandler(adminUsecase),
		userHandler:        handlers.NewUserHandler(userUsecase),
		transactionHandler: handlers.NewTransactionHandler(reportUsecase),
		authMiddleware:     middleware.AuthMiddleware(authUsecase, logoutRoute),
		rateLimit:          middleware.RateLimitMiddleware(limiter),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		select {
		case <-quit:
		case <-jobCtx.Done():
			return
		}
		logger.Info(ctx, "Shutting down server")
		cleanupJob.Stop()
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "ICO admin backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(srv); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
