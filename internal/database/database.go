// Package database opens the relational, redis and mongo connections used by
// the storage backends and the database catalog provider.
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/alchemorsel-discover/backend/config"
)

// Open connects to postgres when cfg needs it and to the sqlite file otherwise.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.UsesPostgres() {
		return OpenPostgres(cfg.Database, log)
	}
	return OpenSQLite(cfg.Storage.SQLitePath, log)
}

// OpenPostgres creates a pooled postgres connection.
func OpenPostgres(dbCfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	log.Info("connecting to database",
		zap.String("host", dbCfg.Host),
		zap.String("port", dbCfg.Port),
		zap.String("user", dbCfg.User))

	db, err := gorm.Open(postgres.Open(dbCfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := HealthCheck(context.Background(), db); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info("successfully connected to database")
	return db, nil
}

// OpenSQLite opens (creating if needed) the sqlite database at path.
func OpenSQLite(path string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database %s: %w", path, err)
	}
	log.Info("using sqlite database", zap.String("path", path))
	return db, nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
