package client

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIURL  = "HIRELOOP_API_URL"
	envTimeout = "HIRELOOP_HTTP_TIMEOUT"
	envDebug   = "HIRELOOP_DEBUG"

	// DefaultBaseURL matches the backend's local development address.
	DefaultBaseURL = "http://localhost:8000"

	defaultTimeout = 15 * time.Second
)

// Config holds the HTTP client settings.
type Config struct {
	// BaseURL is the backend origin; API paths are appended to it.
	BaseURL string
	// Timeout bounds each request.
	Timeout time.Duration
	// Debug enables request/response payload dumps through the logger.
	Debug bool
}

// DefaultConfig returns a config pointing at the local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: defaultTimeout,
	}
}

// ConfigFromEnv loads settings from the environment, reading a .env file
// first when one exists. Missing variables fall back to defaults.
func ConfigFromEnv() Config {
	// Best effort; a missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv(envAPIURL); v != "" {
		cfg.BaseURL = v
	}

	if v := os.Getenv(envTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv(envDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}

	return cfg
}
