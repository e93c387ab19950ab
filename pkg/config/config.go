package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ProviderConfig holds static generation defaults for one LLM backend.
type ProviderConfig struct {
	APIKey            string
	Model             string
	TranslationModel  string
	Temperature       float64
	TopP              float64
	MaxTokensOverview int
	MaxTokensDetail   int
}

type Config struct {
	Port        string
	FrontendURL string
	LogLevel    string

	// AI provider selection and per-provider defaults
	AIProvider string
	Gemini     ProviderConfig
	OpenAI     ProviderConfig

	// Transcript processing limits (characters)
	TranscriptLimitOverview int
	TranscriptLimitDetail   int

	// Cache lifecycle
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Upstream LLM call timeout, distinct from client cancellation
	GenerationTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8000"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AIProvider: getEnv("AI_PROVIDER", "gemini"),
		Gemini: ProviderConfig{
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			Model:             getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
			TranslationModel:  getEnv("GEMINI_TRANSLATION_MODEL", "gemini-1.5-flash"),
			Temperature:       getEnvFloat("GEMINI_TEMPERATURE", 0.7),
			TopP:              getEnvFloat("GEMINI_TOP_P", 0.9),
			MaxTokensOverview: getEnvInt("GEMINI_MAX_TOKENS_OVERVIEW", 500),
			MaxTokensDetail:   getEnvInt("GEMINI_MAX_TOKENS_DETAIL", 6000),
		},
		OpenAI: ProviderConfig{
			APIKey:            getEnv("OPENAI_API_KEY", ""),
			Model:             getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			TranslationModel:  getEnv("OPENAI_TRANSLATION_MODEL", "gpt-4o-mini"),
			Temperature:       getEnvFloat("OPENAI_TEMPERATURE", 0.7),
			MaxTokensOverview: getEnvInt("OPENAI_MAX_TOKENS_OVERVIEW", 500),
			MaxTokensDetail:   getEnvInt("OPENAI_MAX_TOKENS_DETAIL", 6000),
		},

		TranscriptLimitOverview: getEnvInt("TRANSCRIPT_LIMIT_OVERVIEW", 8000),
		TranscriptLimitDetail:   getEnvInt("TRANSCRIPT_LIMIT_DETAIL", 50000),

		CacheTTL:           getEnvDuration("CACHE_TTL", 24*time.Hour),
		CacheSweepInterval: getEnvDuration("CACHE_SWEEP_INTERVAL", time.Hour),

		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", 2*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
