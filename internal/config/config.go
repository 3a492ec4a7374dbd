// Package config handles application configuration via environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configurable values for the app.
type Config struct {
	Env             string
	Port            string
	DBPath          string
	SecretKey       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file, then environment variables, falling back
// to development defaults.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "720h"))
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "taper.db")),
		SecretKey:       getEnv("SECRET_KEY", "change_me_in_production"),
		TokenTTL:        tokenTTL,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
