package database

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database configuration
type Config struct {
	Driver string

	// SQLite
	Path string

	// PostgreSQL
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Driver:   getEnv("DB_DRIVER", DriverSQLite),
		Path:     getEnv("DB_PATH", "budgetplanner.db"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "budget"),
		Password: getEnv("DB_PASSWORD", "budget"),
		DBName:   getEnv("DB_NAME", "budgetplanner"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the driver and its required settings.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("DB_PATH must not be empty for the sqlite driver")
		}
	case DriverPostgres:
		if c.Host == "" || c.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q (use %s or %s)", c.Driver, DriverSQLite, DriverPostgres)
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the URL form used by golang-migrate.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
