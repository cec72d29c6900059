package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds configuration for the development backend.
type ServerConfig struct {
	// Server
	Port string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration
}

var serverConfig *ServerConfig

// LoadServer loads development backend configuration from environment variables.
func LoadServer() (*ServerConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &ServerConfig{
		Port:      getEnv("PORT", "8080"),
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	cfg.JWTExpirationDur = expDur

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	serverConfig = cfg
	return cfg, nil
}

// Server returns the development backend configuration, loading it on first use.
func Server() *ServerConfig {
	if serverConfig == nil {
		var err error
		serverConfig, err = LoadServer()
		if err != nil {
			log.Fatalf("Failed to load server configuration: %v", err)
		}
	}
	return serverConfig
}

// SetServer installs cfg as the active server configuration (tests, embedding).
func SetServer(cfg *ServerConfig) {
	serverConfig = cfg
}

// Validate checks the port range and the JWT secret.
func (c *ServerConfig) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
