package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the runtime configuration for the atelier backend.
type Config struct {
	Environment string `env:"ATELIER_ENV" envDefault:"development"`
	HTTPAddr    string `env:"ATELIER_HTTP_ADDR" envDefault:":8080"`

	// DatabaseDSN is a postgres DSN. When empty the service falls back to a
	// local sqlite file, which is only intended for development.
	DatabaseDSN string `env:"ATELIER_DATABASE_DSN"`
	SQLitePath  string `env:"ATELIER_SQLITE_PATH" envDefault:"atelier.db"`

	// AdminAPIKey guards the admin CRM surface. Empty disables admin routes.
	AdminAPIKey string `env:"ATELIER_ADMIN_API_KEY"`

	IntakeRateLimit  int           `env:"ATELIER_INTAKE_RATE_LIMIT" envDefault:"10"`
	IntakeRateWindow time.Duration `env:"ATELIER_INTAKE_RATE_WINDOW" envDefault:"1m"`

	Reconciler ReconcilerConfig
}

// ReconcilerConfig controls the background ledger reconciler loop.
type ReconcilerConfig struct {
	Enabled      bool          `env:"ATELIER_RECONCILER_ENABLED" envDefault:"true"`
	BatchSize    int           `env:"ATELIER_RECONCILER_BATCH_SIZE" envDefault:"25"`
	PollInterval time.Duration `env:"ATELIER_RECONCILER_POLL_INTERVAL" envDefault:"5m"`
}

func (c ReconcilerConfig) WithDefaults() ReconcilerConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 25
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 5 * time.Minute
	}
	return c
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.Reconciler = cfg.Reconciler.WithDefaults()
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
