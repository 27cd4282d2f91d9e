package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP
	HTTPPort        int           `env:"HTTP_PORT" default:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Database
	DatabaseDriver string `env:"DATABASE_DRIVER" default:"sqlite"`
	DatabaseURL    string `env:"DATABASE_URL" default:"finance.db"`

	// Authentication
	JWTSecret        string `env:"JWT_SECRET" required:"true"`
	JWTRefreshSecret string `env:"JWT_REFRESH_SECRET" required:"true"`
	BcryptCost       int    `env:"BCRYPT_COST" default:"10"`

	// Token TTLs
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"10m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" default:"168h"`

	// Refresh token ledger cleanup, 0 disables the pruner
	RefreshTokenCleanupInterval time.Duration `env:"REFRESH_TOKEN_CLEANUP_INTERVAL" default:"1h"`

	// Redis backs the login attempt tracker; empty disables it
	RedisURL           string        `env:"REDIS_URL"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW" default:"15m"`

	// Per-IP rate limiting, 0 RPS disables it
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" default:"20"`

	// Reverse proxies (IPs or CIDRs) allowed to set X-Forwarded-For; empty trusts none
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"json"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional, plain environment variables still work without it
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// HTTP
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 3000); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvString(&config.DatabaseDriver, "DATABASE_DRIVER", "sqlite"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.DatabaseURL, "DATABASE_URL", "finance.db"); err != nil {
		return nil, err
	}

	// Authentication, required by Validate but not by maintenance commands
	if err := loadEnvString(&config.JWTSecret, "JWT_SECRET", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.JWTRefreshSecret, "JWT_REFRESH_SECRET", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.BcryptCost, "BCRYPT_COST", bcrypt.DefaultCost); err != nil {
		return nil, err
	}

	// Token TTLs
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenTTL, "REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.RefreshTokenCleanupInterval, "REFRESH_TOKEN_CLEANUP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.LoginMaxAttempts, "LOGIN_MAX_ATTEMPTS", 5); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.LoginAttemptWindow, "LOGIN_ATTEMPT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}

	// Rate limiting
	if err := loadEnvFloat(&config.RateLimitRPS, "RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RateLimitBurst, "RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}
	loadEnvList(&config.TrustedProxies, "TRUSTED_PROXIES")

	// Logging
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "json"); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

// loadEnvList splits a comma separated variable, dropping blank entries.
func loadEnvList(target *[]string, key string) {
	*target = nil
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			*target = append(*target, item)
		}
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	errors := c.storageErrors()

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if c.JWTRefreshSecret == "" {
		errors = append(errors, "JWT_REFRESH_SECRET is required")
	}
	// access and refresh tokens must not be interchangeable
	if c.JWTSecret == c.JWTRefreshSecret {
		errors = append(errors, "JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.IsProduction() && (len(c.JWTSecret) < 32 || len(c.JWTRefreshSecret) < 32) {
		errors = append(errors, "JWT secrets should be at least 32 characters long in production")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if c.AccessTokenTTL <= 0 {
		errors = append(errors, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		errors = append(errors, "REFRESH_TOKEN_TTL must be positive")
	}
	if c.RefreshTokenCleanupInterval < 0 {
		errors = append(errors, "REFRESH_TOKEN_CLEANUP_INTERVAL must not be negative")
	}

	if c.LoginMaxAttempts < 1 {
		errors = append(errors, "LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	if c.LoginAttemptWindow <= 0 {
		errors = append(errors, "LOGIN_ATTEMPT_WINDOW must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errors = append(errors, "RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	for _, proxy := range c.TrustedProxies {
		if !validProxy(proxy) {
			errors = append(errors, fmt.Sprintf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// ValidateStorage checks only what maintenance commands need: the database and logging settings.
func (c *Config) ValidateStorage() error {
	if errors := c.storageErrors(); len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

func (c *Config) storageErrors() []string {
	var errors []string

	validDrivers := []string{"sqlite", "postgres"}
	if !contains(validDrivers, c.DatabaseDriver) {
		errors = append(errors, fmt.Sprintf("DATABASE_DRIVER must be one of: %s", strings.Join(validDrivers, ", ")))
	}
	if c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL must not be empty")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	return errors
}

func validProxy(value string) bool {
	if net.ParseIP(value) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(value)
	return err == nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
