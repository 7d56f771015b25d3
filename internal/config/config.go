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
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Tracker  TrackerConfig
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
	ReportDir          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	OpenAI     string
	Anthropic  string
	ProPublica string
	ElevenLabs string
}

type AIConfig struct {
	EmbeddingProvider string // "openai" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "openai", "anthropic", "ollama"
	LLMModel          string
	SecondaryProvider string // second model for the ensemble page
	SecondaryModel    string
	EmbedTopic        string
}

type TrackerConfig struct {
	Store      string // "file" or "redis"
	MirrorDir  string
	SessionTTL int // minutes a session stays alive without activity
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
			JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
			ReportDir:          getEnv("REPORT_DIR", "reports"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "PolicyCompassAI"),
		},
		Keys: APIKeys{
			OpenAI:     getEnv("OPENAI_API_KEY", ""),
			Anthropic:  getEnv("ANTHROPIC_API_KEY", ""),
			ProPublica: getEnv("PROPUBLICA_API_KEY", ""),
			ElevenLabs: getEnv("ELEVENLABS_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			SecondaryProvider: getEnv("SECONDARY_LLM_PROVIDER", "anthropic"),
			SecondaryModel:    getEnv("SECONDARY_LLM_MODEL", "claude-3-5-sonnet-20241022"),
			EmbedTopic:        getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CONTENT"),
		},
		Tracker: TrackerConfig{
			Store:      getEnv("TRACKER_STORE", "file"),
			MirrorDir:  getEnv("TRACKER_MIRROR_DIR", "session_data"),
			SessionTTL: getEnvAsInt("SESSION_TTL_MINUTES", 120),
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
