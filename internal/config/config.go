// Package config loads server settings from flags, the environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Port        int
	DBDriver    string
	DBPath      string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	RedisURL    string
	StaticPath  string
	CORSOrigin  string
	LogLevel    string
	LogFormat   string
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// LoadDotEnv loads variables from path into the process environment.
// A missing file is not an error. Existing variables are not overridden.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load parses args with environment fallbacks from getenv.
// Flags win over the environment, which wins over defaults.
func Load(args []string, getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.Atoi(env("PORT", "8080"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PORT: %w", err)
	}
	ttl, err := time.ParseDuration(env("TOKEN_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	var cfg Config
	flags := flag.NewFlagSet("billsplitter", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.IntVar(&cfg.Port, "port", port, "HTTP listen port")
	flags.StringVar(&cfg.DBDriver, "db-driver", env("DB_DRIVER", "sqlite"), "database driver: sqlite or postgres")
	flags.StringVar(&cfg.DBPath, "db-path", env("DB_PATH", "./data/bills.db"), "SQLite database file")
	flags.StringVar(&cfg.DatabaseURL, "database-url", env("DATABASE_URL", ""), "PostgreSQL connection string")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", env("JWT_SECRET", ""), "HMAC secret for session tokens")
	flags.DurationVar(&cfg.TokenTTL, "token-ttl", ttl, "session token lifetime")
	flags.StringVar(&cfg.RedisURL, "redis-url", env("REDIS_URL", ""), "Redis URL for the shared token revocation list")
	flags.StringVar(&cfg.StaticPath, "static-path", env("STATIC_PATH", "../frontend/static"), "directory of the web UI")
	flags.StringVar(&cfg.CORSOrigin, "cors-origin", env("CORS_ORIGIN", "*"), "allowed CORS origin")
	flags.StringVar(&cfg.LogLevel, "log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error")
	flags.StringVar(&cfg.LogFormat, "log-format", env("LOG_FORMAT", "text"), "text or json")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required for sqlite"))
		}
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
