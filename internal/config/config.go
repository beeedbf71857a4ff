package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port           string
	AllowedOrigins string

	// OpenRouter (OpenAI-compatible) completion endpoint
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	Model             string
	Referrer          string // optional HTTP-Referer header for OpenRouter rankings
	AppTitle          string // optional X-Title header for OpenRouter rankings
	CompletionTimeout time.Duration

	// Admin panel
	AdminUser          string
	AdminPassword      string
	JWTSecret          string
	AdminSessionExpiry time.Duration

	// Conversation store
	SessionTTL        time.Duration
	RollbackOnFailure bool // drop the pending user turn when the completion call fails
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:             getEnv("CHAT_MODEL", "mistralai/mistral-7b-instruct"),
		Referrer:          getEnv("OPENROUTER_REFERRER", ""),
		AppTitle:          getEnv("OPENROUTER_APP_TITLE", "Chatbot Zezim"),
		CompletionTimeout: getDurationEnv("COMPLETION_TIMEOUT", 60*time.Second),

		AdminUser:          getEnv("ADMIN_USER", "chatbot"),
		AdminPassword:      getEnv("ADMIN_PASS", "@chatbot0123"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AdminSessionExpiry: getDurationEnv("ADMIN_SESSION_EXPIRY", 12*time.Hour),

		SessionTTL:        getDurationEnv("SESSION_TTL", 24*time.Hour),
		RollbackOnFailure: getBoolEnv("CHAT_ROLLBACK_ON_FAILURE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
