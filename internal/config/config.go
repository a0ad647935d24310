package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// BackendAPI talks to the remote expense API.
	BackendAPI = "api"
	// BackendMemory runs against the in-process store for offline work.
	BackendMemory = "memory"
)

type Config struct {
	// HTTP server
	Port string

	// Remote expense API
	APIBaseURL string
	APIToken   string
	APITimeout time.Duration

	// Backend selection: "api" talks to the remote gateway, "memory" runs
	// against an in-process store for offline development.
	DataBackend string

	// List defaults
	ListLimit int

	// Summary chart cache
	ChartCacheTTL time.Duration

	// Rate limit applied to mutating page requests
	RateLimitPerMinute int
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "3000"),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
		APIToken:   getEnv("API_TOKEN", ""),
		APITimeout: getEnvDuration("API_TIMEOUT", 15*time.Second),

		DataBackend: getEnv("DATA_BACKEND", "api"),

		ListLimit: getEnvInt("LIST_LIMIT", 10),

		ChartCacheTTL: getEnvDuration("CHART_CACHE_TTL", 5*time.Minute),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{BackendAPI, BackendMemory}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate API configuration if backend is api
	if c.DataBackend == BackendAPI {
		if parsed, err := url.Parse(c.APIBaseURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
		} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
		}

		if c.APIToken == "" {
			errors = append(errors, "API token cannot be empty when using api backend")
		}
	}

	if c.APITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid API timeout %v: must be at least 1 second", c.APITimeout))
	}

	if c.ListLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid list limit %d: must be at least 1", c.ListLimit))
	}

	if c.ChartCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid chart cache TTL %v: must be at least 1 second", c.ChartCacheTTL))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
