package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer         string // Required: issuer claim for tokens
	BootstrapToken string // Optional: token required to perform bootstrap

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./procure.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	AccessTokenTTL      time.Duration // Access token lifetime (default: 8h)
	VerificationTTL     time.Duration // Email verification link lifetime (default: 24h)

	// SMTP relay settings. Mail is disabled when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	BaseURL      string // Public address used in verification links
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("PROCURE_ISSUER", "procure"),
		BootstrapToken: os.Getenv("PROCURE_BOOTSTRAP_TOKEN"),

		DatabaseFile:        getEnvOrDefault("PROCURE_DATABASE_FILE", "procure.db"),
		PepperFile:          os.Getenv("PROCURE_PEPPER_FILE"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		AccessTokenTTL:      getEnvDurationOrDefault("PROCURE_ACCESS_TOKEN_TTL", 8*time.Hour),
		VerificationTTL:     getEnvDurationOrDefault("PROCURE_VERIFICATION_TTL", 24*time.Hour),

		SMTPHost:     os.Getenv("PROCURE_SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("PROCURE_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("PROCURE_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("PROCURE_SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("PROCURE_SMTP_FROM", "noreply@procure.local"),
		BaseURL:      getEnvOrDefault("PROCURE_BASE_URL", "http://localhost:8080"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
