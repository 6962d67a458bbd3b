package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Store  StoreConfig
	Export ExportConfig
	Rules  RulesConfig
}

// StoreConfig holds run-history store configuration
type StoreConfig struct {
	Path string
}

// ExportConfig holds export-related configuration
type ExportConfig struct {
	OutputDir string
	SheetName string
}

// RulesConfig holds vendor-rule override configuration
type RulesConfig struct {
	OverridePath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: getEnv("COMEX_STORE_PATH", "./comex-runs.db"),
		},
		Export: ExportConfig{
			OutputDir: getEnv("COMEX_OUTPUT_DIR", "."),
			SheetName: getEnv("COMEX_SHEET_NAME", "Dados"),
		},
		Rules: RulesConfig{
			OverridePath: getEnv("COMEX_RULES_OVERRIDE", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return NewAppError("CONFIG_ERROR", "COMEX_STORE_PATH is required", ErrInvalidInput)
	}
	if c.Export.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "COMEX_OUTPUT_DIR is required", ErrInvalidInput)
	}
	return nil
}
