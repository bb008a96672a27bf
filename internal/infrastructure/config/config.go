package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port            string `env:"PORT,             default=8080"`
	Env             string `env:"ENV,              default=development"`
	LogLevel        string `env:"LOG_LEVEL,        default=info"`
	LogPretty       bool   `env:"LOG_PRETTY,       default=false"`
	LogFile         string `env:"LOG_FILE"`
	FunctionsPrefix string `env:"FUNCTIONS_PREFIX, default=/.netlify/functions"`
	JWTSecret       string `env:"JWT_SECRET"`

	DB        DBConfig
	Redis     RedisConfig
	Identity  IdentityConfig
	KeepAlive KeepAliveConfig
	Client    ClientConfig
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER,    default=postgres"`
	URL      string `env:"DATABASE_URL"`
	SeedDemo bool   `env:"DB_SEED_DEMO, default=false"`
}

// RedisConfig is optional: an empty Addr disables Idempotency-Key handling.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type IdentityConfig struct {
	URL        string `env:"IDENTITY_URL"`
	AdminToken string `env:"IDENTITY_ADMIN_TOKEN"`
}

// KeepAliveConfig controls the in-process keep-alive job. An empty
// Schedule disables it; the HTTP endpoint stays available either way.
type KeepAliveConfig struct {
	Schedule string        `env:"KEEPALIVE_SCHEDULE, default=@daily"`
	Timeout  time.Duration `env:"KEEPALIVE_TIMEOUT,  default=30s"`
}

type ClientConfig struct {
	APIURL      string `env:"ISSUES_API_URL, default=http://localhost:8080"`
	SessionFile string `env:"SESSION_FILE"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.FunctionsPrefix = "/" + strings.Trim(cfg.FunctionsPrefix, "/")
	return &cfg, nil
}

// ValidateServer reports every missing setting the HTTP server needs.
func (c *Config) ValidateServer() error {
	errs := []error{c.ValidateDatabase()}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Identity.URL == "" {
		errs = append(errs, errors.New("IDENTITY_URL is required"))
	}
	if c.Identity.AdminToken == "" {
		errs = append(errs, errors.New("IDENTITY_ADMIN_TOKEN is required"))
	}
	return errors.Join(errs...)
}

// ValidateDatabase checks the settings needed to open the issues table.
func (c *Config) ValidateDatabase() error {
	var errs []error
	if c.DB.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverSQLite {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DB.Driver))
	}
	return errors.Join(errs...)
}

// ValidateClient reports every missing setting the terminal client needs.
func (c *Config) ValidateClient() error {
	var errs []error
	if c.Client.APIURL == "" {
		errs = append(errs, errors.New("ISSUES_API_URL is required"))
	}
	if c.Identity.URL == "" {
		errs = append(errs, errors.New("IDENTITY_URL is required"))
	}
	return errors.Join(errs...)
}

// SessionPath returns the session file location, defaulting to
// <user config dir>/issues/session.yaml.
func (c *Config) SessionPath() (string, error) {
	if c.Client.SessionFile != "" {
		return c.Client.SessionFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locate user config dir: %w", err)
	}
	return filepath.Join(dir, "issues", "session.yaml"), nil
}

// IsDevelopment reports whether human-friendly output should be the default.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}
