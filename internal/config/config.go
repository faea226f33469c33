package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string
	// Storage
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string
	// Auth0
	Auth0Domain string
	APIAudience string
	JWKSURL     string // Constructed from Auth0Domain + /.well-known/jwks.json
	Issuer      string // https://<Auth0Domain>/
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	domain := strings.TrimSuffix(strings.TrimPrefix(getEnv("AUTH0_DOMAIN", ""), "https://"), "/")

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		CORSOrigins:    getEnv("CORS_ORIGINS", "*"),
		TablePrefix:    getTablePrefix(env),
		DatabaseDriver: getEnv("DATABASE_DRIVER", DriverPostgres),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "database.db"),
		Auth0Domain:    domain,
		APIAudience:    getEnv("API_AUDIENCE", ""),
		LogDir:         getEnv("LOG_DIR", ""),
		LogMaxFiles:    getEnvInt("LOG_MAX_FILES", 10),
	}

	if domain != "" {
		cfg.JWKSURL = "https://" + domain + "/.well-known/jwks.json"
		cfg.Issuer = "https://" + domain + "/"
	}

	return cfg
}

// Validate reports missing or inconsistent settings
func (c *Config) Validate() error {
	var errs []error

	if c.Auth0Domain == "" {
		errs = append(errs, errors.New("AUTH0_DOMAIN is required"))
	}
	if c.APIAudience == "" {
		errs = append(errs, errors.New("API_AUDIENCE is required"))
	}

	switch c.DatabaseDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	if c.LogMaxFiles < 1 {
		errs = append(errs, errors.New("LOG_MAX_FILES must be at least 1"))
	}

	return errors.Join(errs...)
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
