package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-discover/backend/config"
	"github.com/pageza/alchemorsel-discover/backend/internal/api"
	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/database"
	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/logging"
	"github.com/pageza/alchemorsel-discover/backend/internal/middleware"
	"github.com/pageza/alchemorsel-discover/backend/internal/router"
	"github.com/pageza/alchemorsel-discover/backend/internal/server"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
	"github.com/pageza/alchemorsel-discover/backend/internal/storage"
)

// backends holds the connections opened for storage and the catalog.
type backends struct {
	db    *gorm.DB
	redis *redis.Client
	mongo *mongo.Client
}

func (b *backends) close(ctx context.Context, logger *zap.Logger) {
	if b.db != nil {
		if sqlDB, err := b.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		}
	}
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			logger.Warn("failed to close redis", zap.Error(err))
		}
	}
	if b.mongo != nil {
		if err := b.mongo.Disconnect(ctx); err != nil {
			logger.Warn("failed to disconnect mongo", zap.Error(err))
		}
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, string(cfg.Env))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	conns, err := connect(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect backends", zap.Error(err))
	}
	defer conns.close(ctx, logger)

	store, err := newStore(ctx, cfg, conns)
	if err != nil {
		logger.Fatal("failed to create storage", zap.Error(err))
	}

	cat, err := catalog.Load(ctx, newProvider(cfg, conns), logger)
	if err != nil {
		logger.Fatal("failed to load recipe catalog", zap.Error(err))
	}

	bus := events.NewBus()
	prefs := service.NewPreferencesService(store, bus, logger)
	reviews := service.NewReviewService(store, cat.SeedReviews(), bus, logger)
	filters := service.NewFilterService(cat, prefs, bus, logger)
	recipes := service.NewRecipeService(cat, prefs, reviews, filters)

	if err := prefs.Load(ctx); err != nil {
		warnOnPersistence(logger, "preferences", err)
	}
	if err := reviews.Load(ctx); err != nil {
		warnOnPersistence(logger, "reviews", err)
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.WriteRateLimit > 0 {
		limiter = middleware.NewWriteRateLimiter(conns.redis, cfg.Server.WriteRateLimit, logger)
	}

	engine := router.SetupRouter(cfg.Server, api.Services{
		Preferences: prefs,
		Filters:     filters,
		Recipes:     recipes,
		Bus:         bus,
	}, limiter, logger)

	srv := server.New(cfg.Server, engine, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("catalog", cfg.Catalog.Source),
			zap.Int("recipes", cat.Len()))
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			return
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}

func warnOnPersistence(logger *zap.Logger, state string, err error) {
	if !errors.Is(err, service.ErrPersistence) {
		logger.Fatal("failed to load state", zap.String("state", state), zap.Error(err))
	}
	logger.Warn("state loaded with defaults", zap.String("state", state), zap.Error(err))
}

// connect opens only the connections the configured storage backend,
// catalog source and rate limiter need.
func connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*backends, error) {
	b := &backends{}

	needsDB := cfg.Storage.Backend == config.BackendSQLite ||
		cfg.Storage.Backend == config.BackendPostgres ||
		cfg.Catalog.Source == config.CatalogDatabase
	if needsDB {
		db, err := database.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			return nil, err
		}
		b.db = db
	}

	if cfg.UsesRedis() {
		client, err := database.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			b.close(ctx, logger)
			return nil, err
		}
		b.redis = client
	}

	if cfg.Storage.Backend == config.BackendMongo {
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			b.close(ctx, logger)
			return nil, err
		}
		b.mongo = client
	}
	return b, nil
}

func newStore(ctx context.Context, cfg *config.Config, b *backends) (storage.KeyValueStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite, config.BackendPostgres:
		return storage.NewGormStore(b.db), nil
	case config.BackendRedis:
		return storage.NewRedisStore(b.redis, cfg.Storage.KeyPrefix), nil
	case config.BackendMongo:
		coll := b.mongo.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return storage.NewMongoStore(coll), nil
	case config.BackendS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(s3Cfg.Client, s3Cfg.BucketName, s3Cfg.Prefix), nil
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newProvider(cfg *config.Config, b *backends) catalog.Provider {
	switch cfg.Catalog.Source {
	case config.CatalogDatabase:
		return catalog.NewDBProvider(b.db)
	case config.CatalogHTTP:
		return catalog.NewHTTPProvider(cfg.Catalog.URL, cfg.Catalog.Timeout)
	default:
		return catalog.EmbeddedProvider{}
	}
}
