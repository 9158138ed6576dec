package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty secrets dir and a missing .env file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("CI", "false")
	t.Setenv("ENV", "test")
	return dir
}

func writeSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0600))
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "discover.db", cfg.Storage.SQLitePath)
	assert.Equal(t, CatalogEmbedded, cfg.Catalog.Source)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	dir := isolate(t)
	writeSecret(t, dir, "db_password", "from-secret")

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "discover")
	t.Setenv("CATALOG_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_WRITES_PER_MINUTE", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Server.WriteRateLimit)
	assert.True(t, cfg.UsesRedis())

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:8081", "http://localhost:19006"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, BackendPostgres, cfg.Storage.Backend)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "discover", cfg.Database.Name)
	assert.Equal(t, "from-secret", cfg.Database.Password)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Contains(t, cfg.Database.DSN(), "dbname=discover")
}

func TestLoadConfigEnvironmentBeatsSecret(t *testing.T) {
	dir := isolate(t)
	writeSecret(t, dir, "db_password", "from-secret")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("STORAGE_BACKEND", "postgres")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoadConfigCIUsesTestSecrets(t *testing.T) {
	isolate(t)
	t.Setenv("CI", "true")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("TEST_DB_PASSWORD", "ci-pass")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Env)
	assert.Equal(t, "ci-pass", cfg.Database.Password)
}

func TestLoadConfigReadsDotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("CATALOG_SOURCE=http\nCATALOG_URL=http://catalog.local/recipes.json\n"), 0600))
	t.Setenv("ENV_FILE", envFile)
	t.Cleanup(func() {
		os.Unsetenv("CATALOG_SOURCE")
		os.Unsetenv("CATALOG_URL")
	})

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CatalogHTTP, cfg.Catalog.Source)
	assert.Equal(t, "http://catalog.local/recipes.json", cfg.Catalog.URL)
}

func TestLoadConfigValidationFailure(t *testing.T) {
	isolate(t)
	t.Setenv("STORAGE_BACKEND", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "database.password", verr.Field)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080},
			Storage:  StorageConfig{Backend: BackendMemory},
			Catalog:  CatalogConfig{Source: CatalogEmbedded, Timeout: time.Second},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		fields []string
	}{
		{"valid", func(c *Config) {}, nil},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, []string{"server.port"}},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "cassandra" }, []string{"storage.backend"}},
		{"mongo without uri", func(c *Config) { c.Storage.Backend = BackendMongo; c.Mongo.Database = "x" }, []string{"mongo.uri"}},
		{"s3 without bucket and region", func(c *Config) { c.Storage.Backend = BackendS3 }, []string{"s3.bucket", "s3.region"}},
		{"redis without address", func(c *Config) { c.Storage.Backend = BackendRedis }, []string{"redis"}},
		{"rate limit without redis", func(c *Config) { c.Server.WriteRateLimit = 30 }, []string{"redis"}},
		{"negative rate limit", func(c *Config) { c.Server.WriteRateLimit = -1 }, []string{"server.write_rate_limit"}},
		{"http catalog without url", func(c *Config) { c.Catalog.Source = CatalogHTTP }, []string{"catalog.url"}},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, []string{"log_level"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, f := range tt.fields {
				assert.Contains(t, err.Error(), f+":")
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
