// Package config loads server settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mmynk/settleup/pkg/logging"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port       int
	DBPath     string
	StaticPath string

	JWTSecret string
	TokenTTL  time.Duration

	Log logging.Options
}

// DevJWTSecret is used when JWT_SECRET is unset. Load logs nothing about it;
// the caller decides whether to warn.
const DevJWTSecret = "settleup-dev-secret-change-me"

var ErrInvalid = errors.New("invalid configuration")

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration:
//
//	PORT        listen port (default 8080)
//	DB_PATH     SQLite database file (default ./data/settleup.db)
//	STATIC_PATH frontend files served on / (default ../frontend/static)
//	JWT_SECRET  HS256 signing key (default DevJWTSecret)
//	TOKEN_TTL   session lifetime, Go duration syntax (default 24h)
//	LOG_LEVEL   debug, info, warn, error (default info)
//	LOG_FORMAT  text or json (default text)
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("%w: PORT must be 1-65535", ErrInvalid)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("%w: TOKEN_TTL must be a positive duration", ErrInvalid)
	}

	level, err := logging.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	format, err := logging.ParseFormat(getEnv("LOG_FORMAT", "text"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return &Config{
		Port:       port,
		DBPath:     getEnv("DB_PATH", "./data/settleup.db"),
		StaticPath: getEnv("STATIC_PATH", "../frontend/static"),
		JWTSecret:  getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:   ttl,
		Log:        logging.Options{Level: level, Format: format},
	}, nil
}

// Addr is the listen address for http.ListenAndServe.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
