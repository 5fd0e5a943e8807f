package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// LLM configuration
	LLM LLMConfig

	// API configuration
	APIPort int

	// Analysis configuration
	Analysis AnalysisConfig
}

// LLMConfig holds LLM service configuration
type LLMConfig struct {
	Enabled        bool
	Endpoint       string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// AnalysisConfig holds competitive analysis parameters
type AnalysisConfig struct {
	// Cache lifetime for analysis results and reports, in minutes
	CacheTTLMinutes int

	// Product identifiers the scraper pipeline is configured to track.
	// Group members outside this list are flagged as untracked,
	// which is a valid state, not an error.
	TrackedProducts []string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "compete_radar"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "compete"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "compete123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// LLM configuration
		LLM: LLMConfig{
			Enabled:        getEnvOrDefault("LLM_ENABLED", "false") == "true",
			Endpoint:       getEnvOrDefault("LLM_ENDPOINT", "https://api.openai.com/v1"),
			APIKey:         getEnvOrDefault("LLM_API_KEY", ""),
			Model:          getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
			TimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 30),
		},

		APIPort: getEnvInt("API_PORT", 8080),

		Analysis: AnalysisConfig{
			CacheTTLMinutes: getEnvInt("ANALYSIS_CACHE_TTL_MINUTES", 60),
			TrackedProducts: getEnvList("TRACKED_PRODUCTS"),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable as a string slice
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var items []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
