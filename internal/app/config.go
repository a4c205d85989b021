package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, loaded once from the environment and
// immutable afterwards.
type Config struct {
	// Token signing. All three are required; refusing to start beats minting
	// unverifiable or forgeable tokens.
	TokenIssuer   string // TOKENS_ISSUER
	TokenAudience string // TOKENS_AUDIENCE
	TokenKey      string // TOKENS_KEY: symmetric HS256 key, at least 32 bytes
	TokenLifetime time.Duration

	DatabaseFile string
	PepperFile   string

	CookieName       string
	SecureCookies    bool
	LockoutOnFailure bool

	SeedDemoData bool
	DemoUsername string
	DemoPassword string

	CORSAllowedOrigin string

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                 int
	ShutdownGracePeriod  time.Duration
	HousekeepingInterval time.Duration
}

// ErrMissingTokenConfig reports that one of the required token settings is
// absent.
var ErrMissingTokenConfig = errors.New("TOKENS_ISSUER, TOKENS_AUDIENCE and TOKENS_KEY must all be set")

// LoadConfig reads the environment. The token settings are validated here so
// a misconfigured deployment fails before it binds a port; key strength is
// the signer's concern.
func LoadConfig() (Config, error) {
	cfg := Config{
		TokenIssuer:   os.Getenv("TOKENS_ISSUER"),
		TokenAudience: os.Getenv("TOKENS_AUDIENCE"),
		TokenKey:      os.Getenv("TOKENS_KEY"),
		TokenLifetime: getEnvDurationOrDefault("TOKENS_LIFETIME", 15*time.Minute),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "codecamp.db"),
		PepperFile:   getEnvOrDefault("PEPPER_FILE", "pepper"),

		CookieName:       getEnvOrDefault("COOKIE_NAME", "codecamp_session"),
		SecureCookies:    getEnvBoolOrDefault("SECURE_COOKIES", false),
		LockoutOnFailure: getEnvBoolOrDefault("LOCKOUT_ON_FAILURE", false),

		SeedDemoData: getEnvBoolOrDefault("SEED_DEMO_DATA", false),
		DemoUsername: getEnvOrDefault("SEED_DEMO_USERNAME", "sam"),
		DemoPassword: os.Getenv("SEED_DEMO_PASSWORD"),

		CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.TokenIssuer == "" || cfg.TokenAudience == "" || cfg.TokenKey == "" {
		return Config{}, ErrMissingTokenConfig
	}

	return cfg, nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
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

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
