package config

import (
	"os"
	"strconv"
	"strings"

	"drafthours/internal/errors"
)

// Reference sources
const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Config represents the complete application configuration
type Config struct {
	Reference  ReferenceConfig
	Database   DatabaseConfig
	Server     ServerConfig
	UI         UIConfig
	Estimation EstimationConfig
	LogLevel   string
}

// ReferenceConfig selects where the reference table is loaded from
type ReferenceConfig struct {
	Source string
	Files  []string
	Sheet  string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver string
	URL    string
}

// ServerConfig holds API server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// UIConfig holds form UI settings
type UIConfig struct {
	Port string
}

// EstimationConfig holds request limits and the pinned PFD class
type EstimationConfig struct {
	MaxRevisions      int
	MaxDurationMonths int
	PFDStandardClass  string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Reference:  *loadReferenceConfig(),
		Database:   *loadDatabaseConfig(),
		Server:     *loadServerConfig(),
		UI:         *loadUIConfig(),
		Estimation: *loadEstimationConfig(),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadReferenceConfig() *ReferenceConfig {
	var files []string
	for _, f := range strings.Split(getEnvOrDefault("REFERENCE_FILES", "stima_p_id_pfd.xlsx"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return &ReferenceConfig{
		Source: strings.ToLower(getEnvOrDefault("REFERENCE_SOURCE", SourceFile)),
		Files:  files,
		Sheet:  getEnvOrDefault("REFERENCE_SHEET", ""),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver: getEnvOrDefault("DATABASE_DRIVER", "postgres"),
		URL:    getEnvOrDefault("DATABASE_URL", ""),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadUIConfig() *UIConfig {
	return &UIConfig{
		Port: getEnvOrDefault("UI_PORT", "8081"),
	}
}

func loadEstimationConfig() *EstimationConfig {
	return &EstimationConfig{
		MaxRevisions:      getEnvIntOrDefault("MAX_REVISIONS", 5),
		MaxDurationMonths: getEnvIntOrDefault("MAX_DURATION_MONTHS", 60),
		PFDStandardClass:  getEnvOrDefault("PFD_STANDARD_CLASS", "SOLO DRAFTING STANDARD"),
	}
}

func validateConfig(config *Config) error {
	switch config.Reference.Source {
	case SourceFile:
		if len(config.Reference.Files) == 0 {
			return errors.ConfigInvalid("REFERENCE_FILES is required when REFERENCE_SOURCE=file")
		}
	case SourceDatabase:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when REFERENCE_SOURCE=database")
		}
	default:
		return errors.ConfigInvalid("REFERENCE_SOURCE must be file or database, got " + config.Reference.Source)
	}
	switch config.Database.Driver {
	case "postgres", "sqlite3":
	default:
		return errors.ConfigInvalid("DATABASE_DRIVER must be postgres or sqlite3, got " + config.Database.Driver)
	}
	if config.Estimation.MaxRevisions < 0 || config.Estimation.MaxDurationMonths < 0 {
		return errors.ConfigInvalid("estimation limits must not be negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
