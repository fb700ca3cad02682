package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Upstream provider (Metricool) configuration
	MetricoolToken  string
	MetricoolAPIURL string
	UserID          string
	MasterBlogID    string

	// Display configuration
	TimeZone     string
	DisplayLimit int // default best/worst slice size

	// Cache configuration
	BrandCacheTTL time.Duration
	StatsCacheTTL time.Duration

	// Session configuration (fixed-credential stub, not a credential system)
	AdminUsername string
	AdminPassword string
	SessionCookie string
	SessionMaxAge time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		MetricoolToken:  getEnv("METRICOOL_TOKEN", ""),
		MetricoolAPIURL: getEnv("METRICOOL_API_URL", "https://app.metricool.com/api"),
		UserID:          getEnv("METRICOOL_USER_ID", "4156115"),
		MasterBlogID:    getEnv("METRICOOL_MASTER_BLOG_ID", "5351634"),

		TimeZone:     getEnv("TIMEZONE", "UTC"),
		DisplayLimit: getIntEnv("DISPLAY_LIMIT", 12),

		BrandCacheTTL: getDurationEnv("BRAND_CACHE_TTL", 15*time.Minute),
		StatsCacheTTL: getDurationEnv("STATS_CACHE_TTL", 15*time.Minute),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SessionCookie: getEnv("SESSION_COOKIE", "qinary_session"),
		SessionMaxAge: getDurationEnv("SESSION_MAX_AGE", 30*24*time.Hour),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.MetricoolToken == "" {
		return fmt.Errorf("METRICOOL_TOKEN is required")
	}

	if c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}

	if c.DisplayLimit < 1 {
		return fmt.Errorf("DISPLAY_LIMIT must be at least 1")
	}

	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.TimeZone, err)
	}

	return nil
}

// Location returns the configured timezone. Load validates it, so a parse
// failure here falls back to UTC rather than erroring twice.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
