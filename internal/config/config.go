/**
 * Configuration for the NID extraction worker
 *
 * Loads configuration from environment variables (optionally seeded from a
 * .env file by the caller).
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds worker configuration
type Config struct {
	// Result cache
	EnableCache  bool
	CacheMaxSize int
	CacheTTL     time.Duration

	// Upload validation
	MaxFileSize       int64
	AllowedExtensions []string

	// Tesseract configuration
	TessdataPrefix      string
	FrontLanguages      []string
	BackLanguages       []string
	ConfidenceThreshold float64

	// Worker configuration
	WorkerConcurrency int
	ProcessingTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	Environment string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		EnableCache:         getEnvAsBoolOrDefault("ENABLE_CACHE", true),
		CacheMaxSize:        getEnvAsIntOrDefault("CACHE_MAX_SIZE", 1000),
		CacheTTL:            time.Duration(getEnvAsIntOrDefault("CACHE_TTL_SECONDS", 3600)) * time.Second,
		MaxFileSize:         getEnvAsInt64OrDefault("MAX_FILE_SIZE", 5*1024*1024), // 5MB
		AllowedExtensions:   getEnvAsListOrDefault("ALLOWED_EXTENSIONS", []string{"jpg", "jpeg", "png", "bmp"}),
		TessdataPrefix:      getEnvOrDefault("TESSDATA_PREFIX", ""),
		FrontLanguages:      getEnvAsListOrDefault("OCR_FRONT_LANGUAGES", []string{"eng"}),
		BackLanguages:       getEnvAsListOrDefault("OCR_BACK_LANGUAGES", []string{"ben", "eng"}),
		ConfidenceThreshold: getEnvAsFloatOrDefault("OCR_CONFIDENCE_THRESHOLD", 0.3),
		WorkerConcurrency:   getEnvAsIntOrDefault("WORKER_CONCURRENCY", 4),
		ProcessingTimeout:   time.Duration(getEnvAsInt64OrDefault("PROCESSING_TIMEOUT_MS", 300000)) * time.Millisecond,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "INFO"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Environment:         getEnvOrDefault("ENVIRONMENT", "development"),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.EnableCache && c.CacheMaxSize < 1 {
		return fmt.Errorf("CACHE_MAX_SIZE must be at least 1 when ENABLE_CACHE is set, got %d", c.CacheMaxSize)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must not be negative, got %v", c.CacheTTL)
	}

	if c.MaxFileSize < 1024 || c.MaxFileSize > 52428800 { // 1KB to 50MB
		return fmt.Errorf("MAX_FILE_SIZE must be between 1KB and 50MB, got %d", c.MaxFileSize)
	}

	if len(c.AllowedExtensions) == 0 {
		return fmt.Errorf("ALLOWED_EXTENSIONS must list at least one extension")
	}

	if len(c.FrontLanguages) == 0 || len(c.BackLanguages) == 0 {
		return fmt.Errorf("OCR_FRONT_LANGUAGES and OCR_BACK_LANGUAGES are required")
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("OCR_CONFIDENCE_THRESHOLD must be between 0 and 1, got %v", c.ConfidenceThreshold)
	}

	if c.WorkerConcurrency < 1 || c.WorkerConcurrency > 100 {
		return fmt.Errorf("WORKER_CONCURRENCY must be between 1 and 100, got %d", c.WorkerConcurrency)
	}

	if c.ProcessingTimeout <= 0 {
		return fmt.Errorf("PROCESSING_TIMEOUT_MS must be positive, got %v", c.ProcessingTimeout)
	}

	return nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
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

// getEnvAsInt64OrDefault gets environment variable as int64 or returns default
func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
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

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsListOrDefault splits a comma separated variable, lower-cased and trimmed
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		part = strings.TrimPrefix(part, ".")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
