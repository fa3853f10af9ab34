package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Version is reported by the info and health endpoints
const Version = "1.0.0"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Host        string
	Port        string
	CORSOrigins []string
	CORSMethods []string

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlserver
	DatabaseURL       string // full DSN, overrides the parts below when set
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Logging and metrics
	LogLevel      string
	LogFormat     string
	MetricsPrefix string

	// Insert example data into an empty database on startup
	SeedData bool
}

// Load loads configuration from environment variables.
// A .env file (or the file named by ENV_FILE) is read first when present.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg := &Config{
		Host:              getEnv("HOST", "0.0.0.0"),
		Port:              getEnv("PORT", "8000"),
		CORSOrigins:       getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:8080"}),
		CORSMethods:       getEnvAsList("CORS_METHODS", []string{"GET", "POST", "PUT", "DELETE", "PATCH"}),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		MetricsPrefix:     getEnv("METRICS_PREFIX", "franchisedb"),
		SeedData:          getEnvAsBool("SEED_DATA", false),
	}

	if cfg.DBType == "sqlite" && cfg.DBDatabase == "" {
		cfg.DBDatabase = "franchises.db"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can be used to connect
func (cfg *Config) Validate() error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if cfg.DBConnectionLimit < 1 {
		return fmt.Errorf("DB_CONNECTION_LIMIT must be at least 1")
	}
	if cfg.DatabaseURL != "" {
		return nil
	}
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE or DATABASE_URL is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return fmt.Errorf("DB_USER is required for %s", cfg.DBType)
	}
	return nil
}

// ListenAddress is the host:port the HTTP server binds to
func (cfg *Config) ListenAddress() string {
	return cfg.Host + ":" + cfg.Port
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
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

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated environment variable
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
