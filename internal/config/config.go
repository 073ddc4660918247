package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=stocktrack port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
}

// Load reads configuration from the environment, loading a local .env
// file first when one exists. Warnings (default DSN/CORS in use) are
// returned so the caller can log them through its own logger.
func Load() (*Config, []string, error) {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		return nil, nil, errors.New("JWT_SECRET environment variable is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, nil, errors.New("JWT_SECRET must be at least 32 characters")
	}

	var warnings []string
	if cfg.DatabaseDSN == defaultDSN {
		warnings = append(warnings, "DATABASE_DSN is using the default value, set your own Postgres DSN for production")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		warnings = append(warnings, "CORS_ALLOWED_ORIGINS is using the default value, set your own origins for production")
	}

	return cfg, warnings, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
