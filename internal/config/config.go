// Package config provides configuration loading for the ETL pipeline.
package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for an ETL run.
type Config struct {
	// Database settings
	DatabaseURL    string
	MigrationsPath string

	// Settings file describing which datasets/partitions to process
	SettingsPath string

	// Datastore settings (MinIO, with a local fallback for dev)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioRegion    string
	Bucket         string
	BasePrefix     string
	LocalRoot      string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("PUDL_MIGRATIONS_PATH", "./migrations"),

		SettingsPath: getEnv("PUDL_SETTINGS_PATH", "./etl_settings.yml"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioRegion:    getEnv("MINIO_REGION", ""),
		Bucket:         getEnv("PUDL_BUCKET", "pudl"),
		BasePrefix:     getEnv("PUDL_BASE_PREFIX", "raw"),
		LocalRoot:      getEnv("PUDL_LOCAL_ROOT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
