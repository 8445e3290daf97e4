package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "DB_CONNECTION_STRING", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
	"RUN_MIGRATIONS", "JWT_SECRET", "JWT_DURATION", "BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT",
	"PPROF_ENABLED", "PPROF_ADDR",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func validConfig() Config {
	return Config{
		Port:               "8080",
		DBConnectionString: "postgres://localhost/expenses",
		DBMaxOpenConns:     50,
		DBMaxIdleConns:     25,
		DBConnMaxLifetime:  5 * time.Minute,
		JWTSecret:          "secret",
		JWTDuration:        24 * time.Hour,
		BcryptCost:         10,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_CONNECTION_STRING", "postgres://localhost/expenses")
	t.Setenv("JWT_SECRET", "top-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTDuration)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 50, cfg.DBMaxOpenConns)
	assert.Equal(t, 25, cfg.DBMaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.PprofEnabled)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_CONNECTION_STRING", "postgres://db/expenses")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_DURATION", "2h")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTDuration)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DB_CONNECTION_STRING=postgres://file/expenses\nJWT_SECRET=from-file\nPORT=7070\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/expenses", cfg.DBConnectionString)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoad_MissingRequiredValues(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no DB_CONNECTION_STRING provided")
	assert.Contains(t, err.Error(), "no JWT_SECRET provided")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errorString string
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "bcrypt cost too low",
			mutate:      func(c *Config) { c.BcryptCost = 2 },
			errorString: "invalid bcrypt cost 2",
		},
		{
			name:        "non-positive jwt duration",
			mutate:      func(c *Config) { c.JWTDuration = 0 },
			errorString: "invalid JWT duration",
		},
		{
			name:        "unknown log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			errorString: "invalid log format 'xml'",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			errorString: "invalid log level 'verbose'",
		},
		{
			name:        "negative pool size",
			mutate:      func(c *Config) { c.DBMaxOpenConns = -1 },
			errorString: "database pool sizes must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errorString == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}
