package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If .env file doesn't exist or environment variables are not set, returns a Config with empty values
// which allows tests to use fallback DSN values
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	// Try both possible paths
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{
		Calendar: CalendarConfig{
			FromEmail: getEnvOrDefault("TEST_CALENDAR_FROM_EMAIL", "MPoP-Digital-Team@justice.gov.uk"),
			Timezone:  "Europe/London",
		},
		Auth: AuthConfig{
			JWTSecret:    getEnvOrDefault("TEST_JWT_SECRET", "integration-test-secret"),
			RequiredRole: defaultRequiredRole,
		},
	}

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		// Return partial config to allow fallback DSN in tests
		return cfg, nil
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		cfg.Database.Host = ""
		return cfg, nil
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	cfg.Database.User = os.Getenv("TEST_DB_USER")
	cfg.Database.Password = os.Getenv("TEST_DB_PASSWORD")
	cfg.Database.DBName = os.Getenv("TEST_DB_NAME")
	if cfg.Database.User == "" || cfg.Database.DBName == "" {
		cfg.Database.Host = ""
	}

	return cfg, nil
}
