// Package config loads process configuration from the environment.
// Command-line flags override these values in main.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-sourced settings.
type Config struct {
	LogFile  string `env:"CAPKIT_LOG_FILE" envDefault:"logs/capkit.log"`
	LogLevel string `env:"CAPKIT_LOG_LEVEL" envDefault:"info"`
	Seed     uint64 `env:"CAPKIT_SEED" envDefault:"1"`
	DBPath   string `env:"CAPKIT_DB_PATH" envDefault:"capkit.db"`
	LLM      LLM
}

// LLM configures the optional violation explainer model.
type LLM struct {
	Endpoint string `env:"CAPKIT_LLM_ENDPOINT" envDefault:"https://api.openai.com/v1"`
	APIKey   string `env:"CAPKIT_LLM_API_KEY"`
	Model    string `env:"CAPKIT_LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
