// Package config loads application configuration from environment
// variables with fallback defaults.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Server bind address (host:port)
	ServerAddr string

	// Enable debug logging
	Debug bool

	// Optional TOML seed file overriding the bundled directory seed
	DirectorySeedFile string

	// Optional DSN for a database-backed directory (postgres:// or a
	// sqlite path). When empty, the static seed directory is used.
	DirectoryDSN string

	// HMAC secret for access tokens. Login is disabled when empty.
	TokenSecret string

	// Issuer claim stamped into access tokens
	TokenIssuer string

	// Access token lifetime
	TokenTTL time.Duration

	// Credential cache sizing; a zero size disables the cache
	CredCacheSize int
	CredCacheTTL  time.Duration
}

// Load reads configuration from environment variables with fallback defaults
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddr:        getEnv("SERVER_ADDR", "localhost:8080"),
		Debug:             getEnvBool("DEBUG", false),
		DirectorySeedFile: getEnv("DIRECTORY_SEED_FILE", ""),
		DirectoryDSN:      getEnv("DIRECTORY_DSN", ""),
		TokenSecret:       getEnv("TOKEN_SECRET", ""),
		TokenIssuer:       getEnv("TOKEN_ISSUER", "folio"),
		TokenTTL:          getEnvDuration("TOKEN_TTL", time.Hour),
		CredCacheSize:     getEnvInt("CRED_CACHE_SIZE", 256),
		CredCacheTTL:      getEnvDuration("CRED_CACHE_TTL", time.Minute),
	}

	if cfg.ServerAddr == "" {
		return nil, fmt.Errorf("SERVER_ADDR is required")
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.CredCacheSize < 0 {
		return nil, fmt.Errorf("CRED_CACHE_SIZE must not be negative")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (Go duration
// syntax, e.g. "30s", "1h") or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if result, err := time.ParseDuration(value); err == nil {
			return result
		}
	}
	return defaultValue
}
