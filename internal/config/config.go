package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPort              = "8080"
	defaultJWTDuration       = 24 * time.Hour
	defaultBcryptCost        = 10
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultDBMaxOpenConns    = 50
	defaultDBMaxIdleConns    = 25
	defaultDBConnMaxLifetime = 5 * time.Minute
	defaultPprofAddr         = "localhost:6060"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port string

	DBConnectionString string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	RunMigrations      bool

	JWTSecret   string
	JWTDuration time.Duration
	BcryptCost  int

	LogLevel  string
	LogFormat string

	PprofEnabled bool
	PprofAddr    string
}

// Load reads the given .env files (or ./.env when none are given) and then the process
// environment. Missing .env files are not an error, values already present in the
// environment always win.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("DB_MAX_OPEN_CONNS", defaultDBMaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", defaultDBMaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME", defaultDBConnMaxLifetime)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_DURATION", defaultJWTDuration)
	v.SetDefault("BCRYPT_COST", defaultBcryptCost)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("LOG_FORMAT", defaultLogFormat)
	v.SetDefault("PPROF_ENABLED", false)
	v.SetDefault("PPROF_ADDR", defaultPprofAddr)

	cfg := &Config{
		Port:               v.GetString("PORT"),
		DBConnectionString: v.GetString("DB_CONNECTION_STRING"),
		DBMaxOpenConns:     v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:     v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:  v.GetDuration("DB_CONN_MAX_LIFETIME"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTDuration:        v.GetDuration("JWT_DURATION"),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:          strings.ToLower(v.GetString("LOG_FORMAT")),
		PprofEnabled:       v.GetBool("PPROF_ENABLED"),
		PprofAddr:          v.GetString("PPROF_ADDR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error listing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBConnectionString == "" {
		problems = append(problems, "no DB_CONNECTION_STRING provided")
	}
	if c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0 {
		problems = append(problems, "database pool sizes must not be negative")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "no JWT_SECRET provided")
	}
	if c.JWTDuration <= 0 {
		problems = append(problems, fmt.Sprintf("invalid JWT duration %s: must be positive", c.JWTDuration))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("invalid bcrypt cost %d: must be between %d and %d", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
