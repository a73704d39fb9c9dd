package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Auth     AuthConfig
	Pricing  PricingConfig
	Redis    RedisConfig
	Snapshot SnapshotConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds the bearer token settings.
// An empty JWTSecret switches the API to DevUserID for every request.
type AuthConfig struct {
	JWTSecret string
	DevUserID string
}

// PricingConfig holds price provider settings
type PricingConfig struct {
	Timeout      time.Duration
	RateLimit    float64
	RateBurst    int
	YahooBaseURL string
	CacheTTL     time.Duration
}

// RedisConfig holds the optional quote cache connection. Empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SnapshotConfig holds the daily snapshot schedule.
// Timeout bounds one scheduled run over all users and each triggered capture.
type SnapshotConfig struct {
	Cron    string
	Timeout time.Duration
}

// SecurityConfig holds encryption settings for secrets stored at rest
type SecurityConfig struct {
	EncryptionKey string
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	var errs []string
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return d
	}
	integer := func(key, def string) int {
		i, err := strconv.Atoi(getEnv(key, def))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return i
	}
	float := func(key, def string) float64 {
		f, err := strconv.ParseFloat(getEnv(key, def), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
		return f
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investment_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost")),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			DevUserID: getEnv("AUTH_DEV_USER_ID", "test-user-id"),
		},
		Pricing: PricingConfig{
			Timeout:      duration("PRICE_TIMEOUT", "5s"),
			RateLimit:    float("PRICE_RATE_LIMIT", "5"),
			RateBurst:    integer("PRICE_RATE_BURST", "10"),
			YahooBaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			CacheTTL:     duration("PRICE_CACHE_TTL", "60s"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       integer("REDIS_DB", "0"),
		},
		Snapshot: SnapshotConfig{
			Cron:    getEnv("SNAPSHOT_CRON", "0 0 * * *"),
			Timeout: duration("SNAPSHOT_TIMEOUT", "10m"),
		},
		Security: SecurityConfig{
			EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks value ranges that parse correctly but cannot be used.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid configuration: SERVER_PORT must be between 1 and 65535, got %q", c.Server.Port)
	}
	if c.Pricing.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: PRICE_TIMEOUT must be positive")
	}
	if c.Pricing.RateLimit <= 0 || c.Pricing.RateBurst < 1 {
		return fmt.Errorf("invalid configuration: PRICE_RATE_LIMIT and PRICE_RATE_BURST must be positive")
	}
	if strings.TrimSpace(c.Snapshot.Cron) == "" {
		return fmt.Errorf("invalid configuration: SNAPSHOT_CRON is required")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
