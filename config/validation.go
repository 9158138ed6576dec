package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	storageBackends = []string{BackendSQLite, BackendPostgres, BackendRedis, BackendMongo, BackendS3, BackendMemory}
	catalogSources  = []string{CatalogEmbedded, CatalogDatabase, CatalogHTTP}
	logLevels       = []string{"debug", "info", "warn", "warning", "error"}
)

// ValidateConfig returns every problem found in cfg joined into one error.
func ValidateConfig(cfg *Config) error {
	var errs []error
	fail := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		fail("server.port", "must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if !oneOf(cfg.Storage.Backend, storageBackends) {
		fail("storage.backend", "unknown backend %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == BackendSQLite && cfg.Storage.SQLitePath == "" {
		fail("storage.sqlite_path", "is required for the sqlite backend")
	}
	if cfg.UsesPostgres() {
		if cfg.Database.Host == "" {
			fail("database.host", "is required")
		}
		if cfg.Database.Name == "" {
			fail("database.name", "is required")
		}
		if cfg.Database.User == "" {
			fail("database.user", "is required")
		}
		if cfg.Database.Password == "" {
			fail("database.password", "db_password secret is required")
		}
	}
	if cfg.Server.WriteRateLimit < 0 {
		fail("server.write_rate_limit", "must not be negative")
	}
	if cfg.UsesRedis() && cfg.Redis.URL == "" && cfg.Redis.Host == "" {
		fail("redis", "url or host is required for the redis backend and write rate limiting")
	}
	if cfg.Storage.Backend == BackendMongo {
		if cfg.Mongo.URI == "" {
			fail("mongo.uri", "is required for the mongo backend")
		}
		if cfg.Mongo.Database == "" {
			fail("mongo.database", "is required for the mongo backend")
		}
	}
	if cfg.Storage.Backend == BackendS3 {
		if cfg.S3.Bucket == "" {
			fail("s3.bucket", "is required for the s3 backend")
		}
		if cfg.S3.Region == "" {
			fail("s3.region", "is required for the s3 backend")
		}
	}

	if !oneOf(cfg.Catalog.Source, catalogSources) {
		fail("catalog.source", "unknown source %q", cfg.Catalog.Source)
	}
	if cfg.Catalog.Source == CatalogHTTP && cfg.Catalog.URL == "" {
		fail("catalog.url", "is required for the http catalog source")
	}
	if cfg.Catalog.Timeout <= 0 {
		fail("catalog.timeout", "must be positive")
	}

	if !oneOf(strings.ToLower(cfg.LogLevel), logLevels) {
		fail("log_level", "unknown level %q", cfg.LogLevel)
	}

	return errors.Join(errs...)
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
