package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	OpenAIKey           string
	OpenAIURL           string
	OpenAIModelPrimary  string
	OpenAIModelFallback string

	MapboxToken string

	RedisURL string // optional shared rate-limit store; empty = in-memory

	RateLimitPerHour int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		OpenAIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAIURL:           getEnv("OPENAI_API_URL", "https://api.openai.com/v1/responses"),
		OpenAIModelPrimary:  getEnv("OPENAI_MODEL_PRIMARY", "gpt-4.1-mini"),
		OpenAIModelFallback: getEnv("OPENAI_MODEL_FALLBACK", "gpt-4.1"),

		MapboxToken: getEnv("MAPBOX_TOKEN", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		RateLimitPerHour: getEnvInt("RATE_LIMIT_PER_HOUR", 30),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. AI categorization will return neutral fallback ratings.")
	}
	if AppConfig.MapboxToken == "" {
		log.Println("Warning: MAPBOX_TOKEN not set. Nearby bar search will return mock data.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
