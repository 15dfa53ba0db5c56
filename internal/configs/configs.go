/*
Package configs loads the application configuration from environment
variables.

Both binaries read from here: the CLI client needs the backend base URL and
the credentials file location, the development backend needs its server
settings. Every value has a development default; production refuses to start
without an explicit JWT secret.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ClientConfig holds the settings of the CLI client.
type ClientConfig struct {
	// APIBaseURL is the base URL of the АлёГараж backend.
	APIBaseURL string

	// CredentialsPath is the file holding the persisted token and user
	// snapshot. Empty means the per-user default under the OS config dir.
	CredentialsPath string

	// Environment switches log formatting ("development" or "production").
	Environment string
}

// ServerConfig holds the settings of the development backend.
type ServerConfig struct {
	Environment string
	Port        int

	// JWTSecret signs the bearer tokens.
	JWTSecret string

	// DatabasePath is the SQLite database file.
	DatabasePath string

	// AllowedOrigins lists CORS origins for production; development allows all.
	AllowedOrigins []string
}

// LoadClientConfig reads the CLI client configuration from the environment.
func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		APIBaseURL:      getEnv("ALEGARAZH_API_URL", "http://localhost:4000"),
		CredentialsPath: getEnv("ALEGARAZH_CREDENTIALS", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}
}

// LoadServerConfig reads and validates the backend configuration from the
// environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	cfg.Environment = getEnv("ENVIRONMENT", "development")

	portStr := getEnv("PORT", "4000")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", port)
	}
	cfg.Port = port

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Environment != "development" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s environment", cfg.Environment)
		}
		cfg.JWTSecret = "dev_insecure_secret_change_me"
	}

	cfg.DatabasePath = getEnv("DB_PATH", "./data/alegarazh.db")

	if originsStr := os.Getenv("ALLOWED_ORIGINS"); originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
