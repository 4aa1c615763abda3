package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration, populated from environment variables
// with an optional .env file.
type Config struct {
	Port     string
	LogLevel string
	Pretty   bool

	// RedisAddr empty means the in-memory cache is used instead.
	RedisAddr string
	CacheTTL  time.Duration

	RateLimitPerMinute   int
	MaxSensitivityLevels int
	SensitivityTimeout   time.Duration
}

// Load reads .env if present, then the environment, applying defaults for
// anything unset.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		Pretty:               getEnvBool("LOG_PRETTY", false),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		CacheTTL:             getEnvDuration("CACHE_TTL", time.Hour),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxSensitivityLevels: getEnvInt("MAX_SENSITIVITY_LEVELS", 100),
		SensitivityTimeout:   getEnvDuration("SENSITIVITY_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
