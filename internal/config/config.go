package config

import (
	"os"
	"strconv"

	"fiture/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Paths    PathConfig
	Synth    SynthConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings.
// The database is optional: when URL is empty, generated datasets and
// labeling runs are written to files only.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds the optional coaching-card cache settings
type RedisConfig struct {
	Addr    string
	Enabled bool
}

// PathConfig holds file system paths for pipeline artifacts
type PathConfig struct {
	ProfileFile  string // YAML synthesis profiles
	EnvDir       string // raw environment CSVs (pm.csv, temp.csv, humidity.csv)
	OutDir       string // processed outputs (datasets, manifests)
	ModelFile    string // trained model artifact (JSON)
	RulesFile    string // optional coach rule library override (JSON)
	BackgroundCS string // background sample CSV for the explainer
}

// SynthConfig holds synthesis run settings
type SynthConfig struct {
	Seed    int64
	Workers int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:    getEnvOrDefault("REDIS_ADDR", ""),
			Enabled: getEnvOrDefault("REDIS_ADDR", "") != "",
		},
		Paths: PathConfig{
			ProfileFile:  getEnvOrDefault("PROFILE_FILE", "config/life_profile.yaml"),
			EnvDir:       getEnvOrDefault("ENV_DIR", "data/raw"),
			OutDir:       getEnvOrDefault("OUT_DIR", "data/processed"),
			ModelFile:    getEnvOrDefault("MODEL_FILE", "models/condition_model.json"),
			RulesFile:    getEnvOrDefault("COACH_RULES_FILE", ""),
			BackgroundCS: getEnvOrDefault("BACKGROUND_FILE", "data/processed/train.csv"),
		},
		Synth: SynthConfig{
			Seed:    getEnvInt64OrDefault("SYNTH_SEED", 42),
			Workers: getEnvIntOrDefault("SYNTH_WORKERS", 4),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Paths.ProfileFile == "" {
		return errors.ConfigInvalid("profile file path is required")
	}
	if config.Paths.OutDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Synth.Workers < 1 {
		return errors.ConfigInvalid("SYNTH_WORKERS must be at least 1")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
