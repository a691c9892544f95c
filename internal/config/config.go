package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type APIKeys struct {
	OpenRouter  string
	HuggingFace string
}

type AIConfig struct {
	OllamaBaseURL        string
	OllamaModel          string
	OllamaEmbeddingModel string
	OpenRouterModel      string
	HuggingFaceModel     string
	SystemPrompt         string
	Temperature          float64
	MaxTokens            int
	MaxAttempts          int
	AutoSwitch           bool
	SearchLimit          int
	SearchThreshold      float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "docucortex"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Keys: APIKeys{
			OpenRouter:  getEnv("OPENROUTER_API_KEY", ""),
			HuggingFace: getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:          getEnv("OLLAMA_MODEL", "llama3"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OpenRouterModel:      getEnv("OPENROUTER_MODEL", "mistralai/mistral-7b-instruct:free"),
			HuggingFaceModel:     getEnv("HUGGINGFACE_MODEL", "mistralai/Mistral-7B-Instruct-v0.2"),
			SystemPrompt:         getEnv("AI_SYSTEM_PROMPT", "Tu es DocuCortex, un assistant IA intelligent pour la gestion documentaire."),
			Temperature:          getEnvAsFloat("AI_TEMPERATURE", 0.7),
			MaxTokens:            getEnvAsInt("AI_MAX_TOKENS", 2048),
			MaxAttempts:          getEnvAsInt("AI_MAX_ATTEMPTS", 3),
			AutoSwitch:           getEnvAsBool("AI_FALLBACK_AUTO_SWITCH", true),
			SearchLimit:          getEnvAsInt("AI_SEARCH_LIMIT", 3),
			SearchThreshold:      getEnvAsFloat("AI_SEARCH_THRESHOLD", 0.3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
