package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `mapstructure:"-"`

	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	S3       S3Settings     `mapstructure:"s3"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	LogLevel string         `mapstructure:"log_level"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	// WriteRateLimit caps state-changing requests per client per minute, backed by redis. 0 disables it.
	WriteRateLimit int `mapstructure:"write_rate_limit"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Storage backends for user preferences and reviews.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendS3       = "s3"
	BackendMemory   = "memory"
)

// StorageConfig selects where preferences and reviews are persisted.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
	KeyPrefix  string `mapstructure:"key_prefix"`
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig holds the redis connection settings. URL wins over host/port.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MongoConfig holds the mongo connection settings.
type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// S3Settings names the bucket used by the s3 storage backend.
type S3Settings struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
	Prefix string `mapstructure:"prefix"`
}

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogDatabase = "database"
	CatalogHTTP     = "http"
)

// CatalogConfig selects where the recipe catalog is loaded from.
type CatalogConfig struct {
	Source  string        `mapstructure:"source"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UsesRedis reports whether a redis connection is needed.
func (c *Config) UsesRedis() bool {
	return c.Storage.Backend == BackendRedis || c.Server.WriteRateLimit > 0
}

// UsesPostgres reports whether a postgres connection is needed: for the
// postgres storage backend, or for a database catalog when storage is not sqlite.
func (c *Config) UsesPostgres() bool {
	if c.Storage.Backend == BackendPostgres {
		return true
	}
	return c.Catalog.Source == CatalogDatabase && c.Storage.Backend != BackendSQLite
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.host":             "SERVER_HOST",
	"server.port":             "SERVER_PORT",
	"server.read_timeout":     "SERVER_READ_TIMEOUT",
	"server.write_timeout":    "SERVER_WRITE_TIMEOUT",
	"server.idle_timeout":     "SERVER_IDLE_TIMEOUT",
	"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
	"server.allowed_origins":  "CORS_ALLOWED_ORIGINS",
	"server.write_rate_limit": "RATE_LIMIT_WRITES_PER_MINUTE",
	"storage.backend":         "STORAGE_BACKEND",
	"storage.sqlite_path":     "SQLITE_PATH",
	"storage.key_prefix":      "STORAGE_KEY_PREFIX",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.ssl_mode":       "DB_SSL_MODE",
	"redis.url":               "REDIS_URL",
	"redis.host":              "REDIS_HOST",
	"redis.port":              "REDIS_PORT",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
	"mongo.uri":               "MONGODB_URI_STRING",
	"mongo.database":          "MONGO_DATABASE",
	"mongo.collection":        "MONGO_COLLECTION",
	"s3.bucket":               "S3_BUCKET_NAME",
	"s3.region":               "AWS_REGION",
	"s3.prefix":               "S3_PREFIX",
	"catalog.source":          "CATALOG_SOURCE",
	"catalog.url":             "CATALOG_URL",
	"catalog.timeout":         "CATALOG_TIMEOUT",
	"log_level":               "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.write_rate_limit", 0)

	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.sqlite_path", "discover.db")
	v.SetDefault("storage.key_prefix", "discover:")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "alchemorsel")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("mongo.database", "alchemorsel")
	v.SetDefault("mongo.collection", "kv_entries")

	v.SetDefault("s3.prefix", "discover/")

	v.SetDefault("catalog.source", CatalogEmbedded)
	v.SetDefault("catalog.timeout", 10*time.Second)

	v.SetDefault("log_level", "info")
}

// LoadConfig reads an optional .env file, environment variables and secret
// files, then validates the result.
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Env = GetEnvironment()

	loadSecrets(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// loadSecrets fills credentials that were not set through the environment.
// CI reads the TEST_* variables; every other environment reads Docker secrets.
func loadSecrets(cfg *Config) {
	if cfg.Env == CI {
		setIfEmpty(&cfg.Database.Password, os.Getenv("TEST_DB_PASSWORD"))
		setIfEmpty(&cfg.Redis.Password, os.Getenv("TEST_REDIS_PASSWORD"))
		setIfEmpty(&cfg.Redis.URL, os.Getenv("TEST_REDIS_URL"))
		return
	}
	setIfEmpty(&cfg.Database.User, readSecret("db_user"))
	setIfEmpty(&cfg.Database.Password, readSecret("db_password"))
	setIfEmpty(&cfg.Redis.Password, readSecret("redis_password"))
	setIfEmpty(&cfg.Redis.URL, readSecret("redis_url"))
	setIfEmpty(&cfg.Mongo.URI, readSecret("mongodb_uri"))
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
