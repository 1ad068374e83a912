// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds everything the HTTP server needs to start. Values come
// from environment variables; .env loading happens in main.
type ServerConfig struct {
	Port         int
	DatabaseURL  string
	GeminiAPIKey string
}

// LoadServerConfig reads server configuration from the environment.
// DATABASE_URL and GEMINI_API_KEY are required; PORT defaults to 8080.
func LoadServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		parsed, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		port = parsed
	}

	cfg := &ServerConfig{
		Port:         port,
		DatabaseURL:  databaseURL,
		GeminiAPIKey: apiKey,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	return nil
}
