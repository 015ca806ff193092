package config

import (
	"errors"
	"os"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DatabaseDSN string
	JWTSecret   []byte
	ListenAddr  string
}

// Load reads the configuration from environment variables. DB_DSN and
// JWT_SECRET are required; PORT defaults to 8080.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseDSN: os.Getenv("DB_DSN"),
		ListenAddr:  ":8080",
	}
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("DB_DSN environment variable is not set")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	cfg.JWTSecret = []byte(secret)

	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	return cfg, nil
}
