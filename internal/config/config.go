package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreDatabase = "database"
	StoreRedis    = "redis"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string
	LogLevel string
	Port     string

	// Holding store
	StoreBackend string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string

	// Upstream providers
	UpstreamTimeout      time.Duration
	UpstreamRetries      uint64
	ChartAPIURL          string
	FundAPIURL           string
	ReconcileConcurrency int
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", StoreDatabase),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tijori"),
		DBPassword: getEnv("DB_PASSWORD", "tijori"),
		DBName:     getEnv("DB_NAME", "tijori"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "tijori.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		ChartAPIURL: getEnv("CHART_API_URL", ""),
		FundAPIURL:  getEnv("FUND_API_URL", ""),
	}

	var err error
	if config.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	retries, err := getInt("UPSTREAM_RETRIES", 2)
	if err != nil {
		return nil, err
	}
	if retries < 0 {
		return nil, fmt.Errorf("UPSTREAM_RETRIES must not be negative, got %d", retries)
	}
	config.UpstreamRetries = uint64(retries)
	if config.ReconcileConcurrency, err = getInt("RECONCILE_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if config.ReconcileConcurrency < 1 {
		return nil, fmt.Errorf("RECONCILE_CONCURRENCY must be at least 1, got %d", config.ReconcileConcurrency)
	}

	switch config.StoreBackend {
	case StoreDatabase, StoreRedis:
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND %q", config.StoreBackend)
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}
