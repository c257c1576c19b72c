package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
	"github.com/retailops/backoffice/internal/infrastructure/cache"
	"github.com/retailops/backoffice/internal/infrastructure/config"
	"github.com/retailops/backoffice/internal/infrastructure/event"
	"github.com/retailops/backoffice/internal/infrastructure/logger"
	"github.com/retailops/backoffice/internal/infrastructure/persistence"
	"github.com/retailops/backoffice/internal/infrastructure/storage"
	"github.com/retailops/backoffice/internal/interfaces/http/handler"
	"github.com/retailops/backoffice/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting backoffice server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Reference lists are cached in Redis when available; a cache miss of
	// the whole Redis instance degrades to an in-process cache.
	referenceRepo := persistence.NewGormReferenceRepository(db.DB)
	var referenceData appreturns.ReferenceData
	var redisClient *redis.Client
	redisClient, err = cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory reference cache", zap.Error(err))
		redisClient = nil
		referenceData = cache.NewInMemoryReferenceCache(referenceRepo, cfg.Session.ReferenceCacheTTL)
	} else {
		defer redisClient.Close()
		referenceData = cache.NewRedisReferenceCache(redisClient, referenceRepo, cfg.Session.ReferenceCacheTTL, log)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var vouchers appreturns.VoucherStorage
	switch cfg.Storage.Provider {
	case "s3":
		s3Storage, err := storage.NewS3VoucherStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 voucher storage", zap.Error(err))
		}
		vouchers = s3Storage
		log.Info("S3 voucher storage ready", zap.String("bucket", cfg.Storage.Bucket))
	default:
		vouchers = storage.NewStubVoucherStorage()
		log.Warn("Using stub voucher storage, uploads are not persisted")
	}

	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	txRepo := persistence.NewGormReturnTransactionRepository(db.DB)
	sourceLookup := persistence.NewGormSourceLookup(db.DB)

	sessionService := appreturns.NewSessionService(sourceLookup, txRepo, vouchers, eventBus)
	transactionService := appreturns.NewTransactionService(txRepo)
	referenceService := appreturns.NewReferenceService(referenceData)

	dependencies := map[string]handler.Pinger{
		"database": pingerFunc(func(ctx context.Context) error { return db.Ping() }),
	}
	if redisClient != nil {
		dependencies["redis"] = pingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	handlers := router.Handlers{
		System:      handler.NewSystemHandler(version, dependencies),
		Session:     handler.NewReturnSessionHandler(sessionService),
		Transaction: handler.NewReturnTransactionHandler(transactionService, sessionService),
		Reference:   handler.NewReferenceHandler(referenceService),
	}

	engine := router.New(log, handlers, router.OptionsFromConfig(cfg))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

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
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// pingerFunc adapts a function to the handler.Pinger interface
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}
