// Package config provides environment-backed configuration helpers shared
// by the dashboard and importer entry points.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads a .env file from the working directory when present.
// A missing file is not an error; local development is the only consumer.
func LoadDotEnv() {
	_ = godotenv.Load()
}
