package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	App    AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// AppConfig holds simulator behavior configuration
type AppConfig struct {
	SuccessRate       float64
	MobilePushDelay   time.Duration
	BankTransferDelay time.Duration
	WebhookTimeout    time.Duration
	FailureRate       float64
	MinLatencyMS      int
	MaxLatencyMS      int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string // debug, info, warn, error
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		App: AppConfig{
			SuccessRate:       getEnvAsFloat("SUCCESS_RATE", 0.90),
			MobilePushDelay:   getEnvAsDuration("MOBILE_PUSH_DELAY", "2s"),
			BankTransferDelay: getEnvAsDuration("BANK_TRANSFER_DELAY", "3s"),
			WebhookTimeout:    getEnvAsDuration("WEBHOOK_TIMEOUT", "10s"),
			FailureRate:       getEnvAsFloat("FAILURE_RATE", 0),
			MinLatencyMS:      getEnvAsInt("MIN_LATENCY_MS", 0),
			MaxLatencyMS:      getEnvAsInt("MAX_LATENCY_MS", 0),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	if c.App.SuccessRate < 0 || c.App.SuccessRate > 1 {
		return fmt.Errorf("success rate must be between 0 and 1, got %f", c.App.SuccessRate)
	}
	if c.App.MobilePushDelay < 0 {
		return fmt.Errorf("mobile push delay cannot be negative")
	}
	if c.App.BankTransferDelay < 0 {
		return fmt.Errorf("bank transfer delay cannot be negative")
	}
	if c.App.WebhookTimeout <= 0 {
		return fmt.Errorf("webhook timeout must be positive, got %s", c.App.WebhookTimeout)
	}

	if c.App.FailureRate < 0 || c.App.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %f", c.App.FailureRate)
	}
	if c.App.MinLatencyMS < 0 {
		return fmt.Errorf("min latency cannot be negative")
	}
	if c.App.MaxLatencyMS < c.App.MinLatencyMS {
		return fmt.Errorf("max latency (%d) must be >= min latency (%d)", c.App.MaxLatencyMS, c.App.MinLatencyMS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
