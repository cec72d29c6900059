package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the budget client configuration.
type Config struct {
	// Backend
	APIURL         string
	RequestTimeout time.Duration
	Endpoints      Endpoints

	// Session persistence
	SessionFile string

	// Logging
	Env      string
	LogLevel string

	// Display language of amounts and dates (BCP 47)
	Lang string
}

var appConfig *Config

// Load reads configuration from the environment, loading .env first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		APIURL:      strings.TrimRight(getEnv("BUDGET_API_URL", "http://localhost:8080"), "/"),
		Endpoints:   LoadEndpoints(),
		SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		Lang:        getEnv("BUDGET_LANG", "en"),
	}

	timeout, err := parseTimeout(getEnv("REQUEST_TIMEOUT", ""))
	if err != nil {
		return nil, err
	}
	cfg.RequestTimeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// Get returns the loaded configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid BUDGET_API_URL %q: must be an absolute URL", c.APIURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("invalid BUDGET_API_URL scheme %q: must be http or https", u.Scheme))
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("REQUEST_TIMEOUT must be positive, got %v", c.RequestTimeout))
	}

	if c.SessionFile == "" {
		problems = append(problems, "SESSION_FILE must not be empty")
	}

	problems = append(problems, c.Endpoints.validate()...)

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", s, err)
	}
	return d, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "budgetplanner", "session.json")
	}
	return filepath.Join(home, ".budgetplanner", "session.json")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
