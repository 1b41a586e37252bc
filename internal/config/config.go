package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort          int
	DatabasePath        string
	JWTSecret           string
	ChatAPIKeyPrimary   string
	ChatAPIKeySecondary string
	ChatBaseURL         string
	ChatModel           string
	CORSOrigin          string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:          port,
		DatabasePath:        getEnv("DATABASE_PATH", "./classmate.db"),
		JWTSecret:           secret,
		ChatAPIKeyPrimary:   os.Getenv("CHAT_API_KEY_PRIMARY"),
		ChatAPIKeySecondary: os.Getenv("CHAT_API_KEY_SECONDARY"),
		ChatBaseURL:         getEnv("CHAT_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		ChatModel:           getEnv("CHAT_MODEL", "gemini-2.0-flash"),
		CORSOrigin:          getEnv("CORS_ORIGIN", "*"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
