// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database     DatabaseConfig
	Server       ServerConfig
	Logging      LoggingConfig
	CORS         CORSConfig
	Auth         AuthConfig
	Graph        GraphConfig
	Calendar     CalendarConfig
	Notify       NotifyConfig
	Flipt        FliptConfig
	RateLimitRPM int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds settings for validating inbound bearer tokens
type AuthConfig struct {
	JWTSecret    string
	RequiredRole string
}

// GraphConfig holds Microsoft Graph client credentials
type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
}

// CalendarConfig holds calendar event settings
type CalendarConfig struct {
	FromEmail string
	Timezone  string
}

// NotifyConfig holds GOV.UK Notify settings.
//
// TemplateIDs is keyed by "<language>-<variant>", e.g. "welsh-with-name-date-location".
type NotifyConfig struct {
	APIKey      string
	BaseURL     string
	TemplateIDs map[string]string
}

// FliptConfig holds feature flag service settings
type FliptConfig struct {
	URL       string
	Token     string
	Namespace string
}

const (
	defaultGraphBaseURL  = "https://graph.microsoft.com/v1.0"
	defaultNotifyBaseURL = "https://api.notifications.service.gov.uk"
	defaultRequiredRole  = "ROLE_PROBATION_API__PROBATION_SUPERVISION_APPOINTMENTS__EVENTS"
)

// notifyTemplateEnv maps template keys to the environment variables holding their ids
var notifyTemplateEnv = map[string]string{
	"english-with-name-date":          "NOTIFY_TEMPLATE_ENGLISH_WITH_NAME_DATE",
	"english-with-name-date-location": "NOTIFY_TEMPLATE_ENGLISH_WITH_NAME_DATE_LOCATION",
	"welsh-with-name-date":            "NOTIFY_TEMPLATE_WELSH_WITH_NAME_DATE",
	"welsh-with-name-date-location":   "NOTIFY_TEMPLATE_WELSH_WITH_NAME_DATE_LOCATION",
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	rateLimitStr := os.Getenv("RATE_LIMIT_PER_MINUTE")
	if rateLimitStr == "" {
		rateLimitStr = "100"
	}
	cfg.RateLimitRPM, err = strconv.Atoi(rateLimitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Auth configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.Auth.JWTSecret = jwtSecret
	cfg.Auth.RequiredRole = getEnvOrDefault("REQUIRED_ROLE", defaultRequiredRole)

	// Microsoft Graph configuration
	cfg.Graph.TenantID = os.Getenv("GRAPH_TENANT_ID")
	if cfg.Graph.TenantID == "" {
		return nil, fmt.Errorf("GRAPH_TENANT_ID is required")
	}
	cfg.Graph.ClientID = os.Getenv("GRAPH_CLIENT_ID")
	if cfg.Graph.ClientID == "" {
		return nil, fmt.Errorf("GRAPH_CLIENT_ID is required")
	}
	cfg.Graph.ClientSecret = os.Getenv("GRAPH_CLIENT_SECRET")
	if cfg.Graph.ClientSecret == "" {
		return nil, fmt.Errorf("GRAPH_CLIENT_SECRET is required")
	}
	cfg.Graph.BaseURL = strings.TrimRight(getEnvOrDefault("GRAPH_BASE_URL", defaultGraphBaseURL), "/")
	cfg.Graph.TokenURL = getEnvOrDefault("GRAPH_TOKEN_URL",
		fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", cfg.Graph.TenantID))

	// Calendar configuration
	cfg.Calendar.FromEmail = os.Getenv("CALENDAR_FROM_EMAIL")
	if cfg.Calendar.FromEmail == "" {
		return nil, fmt.Errorf("CALENDAR_FROM_EMAIL is required")
	}
	cfg.Calendar.Timezone = getEnvOrDefault("EVENT_TIMEZONE", "Europe/London")

	// Notify configuration (SMS sending is disabled when the API key is absent)
	cfg.Notify.APIKey = os.Getenv("NOTIFY_API_KEY")
	cfg.Notify.BaseURL = strings.TrimRight(getEnvOrDefault("NOTIFY_BASE_URL", defaultNotifyBaseURL), "/")
	cfg.Notify.TemplateIDs = make(map[string]string, len(notifyTemplateEnv))
	for key, env := range notifyTemplateEnv {
		if id := os.Getenv(env); id != "" {
			cfg.Notify.TemplateIDs[key] = id
		}
	}

	// Flipt configuration (all flags evaluate to disabled when URL is absent)
	cfg.Flipt.URL = strings.TrimRight(os.Getenv("FLIPT_URL"), "/")
	cfg.Flipt.Token = os.Getenv("FLIPT_TOKEN")
	cfg.Flipt.Namespace = getEnvOrDefault("FLIPT_NAMESPACE", "probation-supervision")

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// parseOrigins splits a comma-separated origin list, defaulting to all origins
func parseOrigins(corsOrigins string) []string {
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed = append(allowed, origin)
		}
	}
	// If no valid origins found, default to allow all
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
