package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SessionSecret string `env:"SESSION_SECRET"`
	DBPath        string `env:"DB_PATH" envDefault:"./dev.db"`
	Port          string `env:"PORT" envDefault:"8080"`
	Env           string `env:"APP_ENV" envDefault:"dev"`
}

// Load reads the process environment (after a best-effort dotenv load) and
// returns a populated Config.
func Load() (Config, error) {
	// Best-effort: local dev environment variables. Missing file is fine;
	// production should use real env injection.
	_ = loadDotEnv(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AdminPassword == "" {
		slog.Warn("ADMIN_PASSWORD is not set, rates admin is disabled")
	}
	if cfg.SessionSecret == "" {
		slog.Warn("SESSION_SECRET is not set, using an ephemeral secret")
		cfg.SessionSecret = ephemeralSecret()
	}

	return cfg, nil
}

// IsDev reports whether the app runs in its local development mode.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

func ephemeralSecret() string {
	// Sessions won't survive a restart without a configured secret, which
	// is acceptable for a single-operator tool.
	return fmt.Sprintf("ephemeral-%d", os.Getpid())
}
