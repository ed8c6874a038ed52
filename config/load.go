package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

func Load() (App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, fmt.Errorf("parse env: %w", err)
	}
	// PORT is set by most PaaS runtimes and wins over APP_PORT.
	if p := os.Getenv("PORT"); p != "" {
		cfg.Port = p
	}
	return cfg, nil
}
