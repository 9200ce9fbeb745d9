// Package config loads server settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all server configuration.
type Config struct {
	Port          string        `env:"PORT"           envDefault:"5175"`
	LogLevel      string        `env:"LOG_LEVEL"      envDefault:"info"`
	Environment   string        `env:"APP_ENV"        envDefault:"development"`
	ClientOrigin  string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_secret_change_me"`
	CookieName    string        `env:"COOKIE_NAME"    envDefault:"guesser_session"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"24h"`
	SweepEvery    time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`
	Debug         bool          `env:"DEBUG"`
}

// Production reports whether cookies should be marked Secure.
func (c Config) Production() bool { return c.Environment == "production" }

// Addr is the listen address derived from Port.
func (c Config) Addr() string { return ":" + c.Port }

// Load reads .env (if any) and parses the environment into a Config.
func Load(dotenv ...string) (Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(dotenv...)

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SweepEvery <= 0 {
		return Config{}, fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepEvery)
	}
	if c.Production() && c.SessionSecret == "dev_secret_change_me" {
		return Config{}, fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return c, nil
}
