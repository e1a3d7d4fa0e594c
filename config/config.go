package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// HTTP configuration
	Port string

	// Report configuration
	ReportDir       string
	DefaultTimezone string // fallback zone for stores without an assignment
	ReportWorkers   int
	ReportQueueSize int

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Defaults
		Port:            "8080",
		ReportDir:       "reports",
		DefaultTimezone: "America/Chicago",
		ReportWorkers:   4,
		ReportQueueSize: 64,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Port = port
	}
	if dir := os.Getenv("REPORT_DIR"); dir != "" {
		config.ReportDir = dir
	}
	if tz := os.Getenv("DEFAULT_TIMEZONE"); tz != "" {
		config.DefaultTimezone = tz
	}
	if workers := os.Getenv("REPORT_WORKERS"); workers != "" {
		if parsed, err := strconv.Atoi(workers); err == nil && parsed > 0 {
			config.ReportWorkers = parsed
		}
	}
	if queue := os.Getenv("REPORT_QUEUE_SIZE"); queue != "" {
		if parsed, err := strconv.Atoi(queue); err == nil && parsed > 0 {
			config.ReportQueueSize = parsed
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
