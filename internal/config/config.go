package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// ErrConfigurationMissing is returned when a required setting is absent.
// It is raised before any database or storage resource is acquired.
var ErrConfigurationMissing = errors.New("required configuration missing")

// Config holds all toolkit configuration
type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL string

	// Manifest / artifact storage
	ManifestDir string

	// Confirmation override: when true, commands behave as if --yes was passed
	AssumeYes bool

	// RequireManifest aborts a mutation when its audit manifest cannot be
	// persisted. Disabled per-invocation with --allow-unaudited.
	RequireManifest bool

	// Health server
	Port string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		ManifestDir:     getEnv("MANIFEST_DIR", "./storage"),
		AssumeYes:       getEnvAsBool("SUPPLIERCTL_ASSUME_YES", false),
		RequireManifest: getEnvAsBool("REQUIRE_MANIFEST", true),
		Port:            getEnv("PORT", "8090"),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, &MissingError{Key: "DATABASE_URL"}
	}

	return cfg, nil
}

// MissingError identifies which required setting was absent.
type MissingError struct {
	Key string
}

func (e *MissingError) Error() string {
	return e.Key + " is required"
}

func (e *MissingError) Unwrap() error {
	return ErrConfigurationMissing
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return defaultValue
	}
	return value
}
