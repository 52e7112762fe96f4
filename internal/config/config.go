package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv          string
	DBPath          string
	DBDriver        string
	RedisAddr       string
	CacheEnabled    bool
	ReportCacheTTL  time.Duration
	MetricsAddr     string
	AnthropicAPIKey string
	AnthropicModel  string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "false"))
	if err != nil {
		cacheEnabled = false
	}

	ttl, err := time.ParseDuration(getEnv("REPORT_CACHE_TTL", "10m"))
	if err != nil {
		ttl = 10 * time.Minute
	}

	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		DBPath:          getEnv("DB_PATH", "./data/bmc_banking.db"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		CacheEnabled:    cacheEnabled,
		ReportCacheTTL:  ttl,
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", ""),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
