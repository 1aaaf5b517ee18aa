package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const devPopupSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("POPUP_TOKEN_SECRET must be set in production environment")

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	Env            string        `env:"ENV" envDefault:"development"`
	PopupSecret    string        `env:"POPUP_TOKEN_SECRET" envDefault:"dev-secret-change-in-production"`
	PopupTTL       time.Duration `env:"POPUP_TOKEN_TTL" envDefault:"1h"`
	WordListPath   string        `env:"WORDLIST_PATH"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Env == "production" && cfg.PopupSecret == devPopupSecret {
		return Config{}, ErrInsecureSecret
	}
	if cfg.PopupTTL <= 0 {
		return Config{}, fmt.Errorf("POPUP_TOKEN_TTL must be positive, got %s", cfg.PopupTTL)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return Config{}, fmt.Errorf("rate limit must allow at least one request, got %v rps burst %d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	return cfg, nil
}
