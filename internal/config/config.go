package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName       = "Rollcall"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultShutdownDelay = 10 * time.Second
	defaultStoreTimeout  = 5 * time.Second
	defaultCacheTTL      = time.Minute

	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	storeSecondsEnvVar     = "STORE_TIMEOUT_SECONDS"
	storeDurationEnvVar    = "STORE_TIMEOUT"
	cacheTTLSecondsEnvVar  = "USERS_CACHE_TTL_SECONDS"
	cacheTTLDurationEnvVar = "USERS_CACHE_TTL"
)

// Config captures application runtime configuration loaded from environment
// variables, optionally seeded from a .env file.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	StoreTimeout   time.Duration
	CacheTTL       time.Duration
}

// Load reads configuration values from the environment and populates a
// Config instance. DATABASE_URL and REDIS_URL are required outside of dev;
// in dev the service falls back to an in-memory store and an uncached
// listing when they are absent.
func Load() (Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getEnv("APP_NAME", defaultAppName),
		AppEnv:      strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:        getEnv("PORT", defaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv(shutdownSecondsEnvVar, shutdownDurationEnvVar, defaultShutdownDelay); err != nil {
		return Config{}, err
	}
	if cfg.StoreTimeout, err = durationEnv(storeSecondsEnvVar, storeDurationEnvVar, defaultStoreTimeout); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = durationEnv(cacheTTLSecondsEnvVar, cacheTTLDurationEnvVar, defaultCacheTTL); err != nil {
		return Config{}, err
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development-style environment.
func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// IsProduction reports whether the app runs in production. Store error
// detail logging is gated on this.
func (c Config) IsProduction() bool {
	switch c.AppEnv {
	case "prod", "production":
		return true
	default:
		return false
	}
}

// durationEnv resolves a duration from either a *_SECONDS integer variable
// or a Go duration string variable, the former taking precedence.
func durationEnv(secondsVar, durationVar string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(secondsVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", secondsVar, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(durationVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", durationVar, err)
		}
		return d, nil
	}
	return fallback, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
