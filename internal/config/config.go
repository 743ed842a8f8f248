package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM API Keys
	GeminiAPIKey string // Google Gemini API key (primary provider)
	OpenAIAPIKey string // OpenAI API key (secondary provider)

	// Database
	DatabaseURL string // Postgres connection string for creation history

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev); creations are unscoped
	// - "gateway": Trust X-User-* headers from the front gateway
	AuthMode string

	// Generation defaults
	DefaultModel      string
	MaxRetries        int           // retry budget for rate-limited model calls
	RetryInitialDelay time.Duration // first backoff delay; doubles per retry
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		AuthMode:          getEnv("AUTH_MODE", "none"),
		DefaultModel:      getEnv("DEFAULT_MODEL", "gemini-2.5-flash"),
		MaxRetries:        getEnvInt("GENERATION_MAX_RETRIES", 3),
		RetryInitialDelay: getEnvDuration("GENERATION_RETRY_DELAY", 2*time.Second),
	}
}

// IsGatewayMode returns true if running behind the front gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
