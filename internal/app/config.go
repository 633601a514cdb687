package app

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings shared by the registry processes.
type Config struct {
	PostgresDSN       string `env:"POSTGRES_DSN"`
	TemporalAddress   string `env:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED"`
	// NotifierURL is the base URL of the messaging service. Empty means notifications are only logged.
	NotifierURL      string `env:"NOTIFIER_URL"`
	NotifierToken    string `env:"NOTIFIER_TOKEN"`
	NotifierTemplate string `env:"NOTIFIER_TEMPLATE" envDefault:"adoption"`
	// IdempotentVaccinations skips vaccine names already recorded when rescheduling.
	IdempotentVaccinations bool `env:"VACCINATION_IDEMPOTENT"`
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.TemporalAddress = orDefault(cfg.TemporalAddress, client.DefaultHostPort)
	cfg.TemporalNamespace = orDefault(cfg.TemporalNamespace, client.DefaultNamespace)
	cfg.NotifierURL = strings.TrimSpace(cfg.NotifierURL)
	cfg.NotifierToken = strings.TrimSpace(cfg.NotifierToken)
	if cfg.NotifierURL != "" {
		u, err := url.ParseRequestURI(cfg.NotifierURL)
		if err != nil || u.Host == "" {
			return Config{}, fmt.Errorf("NOTIFIER_URL must be an absolute URL")
		}
		if cfg.NotifierToken == "" {
			return Config{}, fmt.Errorf("NOTIFIER_TOKEN is required when NOTIFIER_URL is set")
		}
	}
	return cfg, nil
}

func orDefault(value, fallback string) string {
	if val := strings.TrimSpace(value); val != "" {
		return val
	}
	return fallback
}
