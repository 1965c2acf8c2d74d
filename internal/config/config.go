package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Assistant AssistantConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider      string // "openai" or "ollama"
	Model         string // e.g. "gpt-4.1-mini", "llama3"
	OllamaBaseURL string
	OpenAIAPIKey  string
}

// AssistantConfig carries the dispatch-core and boundary policy knobs.
type AssistantConfig struct {
	APIKey            string // shared secret callers present in X-API-Key
	FileRoot          string
	AllowedExtensions []string
	MaxFileSizeBytes  int64
	MaxMessageLength  int
	MaxHistoryLength  int
}

type RateLimitConfig struct {
	ChatPerMinute      int
	DocumentsPerMinute int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider:      getEnv("LLM_PROVIDER", "openai"),
			Model:         getEnv("LLM_MODEL", "gpt-4.1-mini"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		},
		Assistant: AssistantConfig{
			APIKey:            getEnv("ASSISTANT_API_KEY", ""),
			FileRoot:          getEnv("FILE_ROOT", "."),
			AllowedExtensions: getEnvAsList("ALLOWED_FILE_EXTENSIONS", ".md,.txt,.json,.py,.ts,.tsx,.js,.jsx,.go"),
			MaxFileSizeBytes:  getEnvAsInt64("MAX_FILE_SIZE_BYTES", 200_000),
			MaxMessageLength:  getEnvAsInt("MAX_MESSAGE_LENGTH", 2000),
			MaxHistoryLength:  getEnvAsInt("MAX_HISTORY_LENGTH", 20),
		},
		RateLimit: RateLimitConfig{
			ChatPerMinute:      getEnvAsInt("CHAT_RATE_LIMIT_PER_MINUTE", 20),
			DocumentsPerMinute: getEnvAsInt("DOCUMENT_RATE_LIMIT_PER_MINUTE", 60),
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

func getEnvAsInt64(key string, fallback int64) int64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
