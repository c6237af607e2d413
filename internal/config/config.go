package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration.
type Config struct {
	ServerPort          int
	DatabasePath        string
	JWTSecret           string
	Environment         string // "development" or "production"
	FrontendDir         string // Base path for the static frontend files
	CORSAllowedOrigins  []string
	ReminderWindowHours int // How far ahead the reminder worker looks for upcoming events
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	windowStr := getEnv("REMINDER_WINDOW_HOURS", "24")
	window, err := strconv.Atoi(windowStr)
	if err != nil || window <= 0 {
		return nil, fmt.Errorf("invalid REMINDER_WINDOW_HOURS %q", windowStr)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	origins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		ServerPort:          port,
		DatabasePath:        getEnv("DATABASE_PATH", "./gatherly.db"),
		JWTSecret:           secret,
		Environment:         getEnv("APP_ENV", "development"),
		FrontendDir:         getEnv("FRONTEND_DIR", "./event-frontend"),
		CORSAllowedOrigins:  origins,
		ReminderWindowHours: window,
	}, nil
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
