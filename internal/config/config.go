// Package config reads application configuration from environment variables.
package config

import (
	"os"
	"strconv"
)

// Config holds application configuration.
type Config struct {
	Port              string
	LogLevel          string
	DatabaseURL       string
	MessageCap        int
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	ChatModel         string
	ChatTemperature   float64
	ChatMaxTokens     int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MessageCap:        getEnvAsInt("MESSAGE_CAP", 50),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		ChatModel:         getEnv("LLM_MODEL", "openai/gpt-3.5-turbo"),
		ChatTemperature:   getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		ChatMaxTokens:     getEnvAsInt("LLM_MAX_TOKENS", 1000),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
