package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Search    SearchConfig
	Ai        AIConfig
	Retrieval RetrievalConfig
	Session   SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	RetrievalLogPath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IndexTopic         string
}

type DatabaseConfig struct {
	Connection string
}

type SearchConfig struct {
	ElasticURL   string
	ElasticIndex string
}

type AIConfig struct {
	EmbeddingProvider string // "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string
	OpenAIBaseURL     string
	OpenAIKey         string
}

type RetrievalConfig struct {
	Alpha            float64
	TopK             int
	CacheTTLSeconds  int
	KeywordTimeoutMs int
	VectorTimeoutMs  int
}

type SessionConfig struct {
	MaxHistory int
	TTLHours   int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			RetrievalLogPath:   getEnv("RETRIEVAL_LOG_PATH", "logs/retrieval.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IndexTopic:         getEnv("INDEX_KNOWLEDGE_TOPIC_NAME", "INDEX_KNOWLEDGE"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Search: SearchConfig{
			ElasticURL:   getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			ElasticIndex: getEnv("ELASTICSEARCH_INDEX", "equipment_docs"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		},
		Retrieval: RetrievalConfig{
			Alpha:            getEnvAsFloat("RETRIEVAL_FUSION_ALPHA", 0.5),
			TopK:             getEnvAsInt("RETRIEVAL_TOP_K", 10),
			CacheTTLSeconds:  getEnvAsInt("RETRIEVAL_CACHE_TTL_SECONDS", 300),
			KeywordTimeoutMs: getEnvAsInt("KEYWORD_TIMEOUT_MS", 5000),
			VectorTimeoutMs:  getEnvAsInt("VECTOR_TIMEOUT_MS", 5000),
		},
		Session: SessionConfig{
			MaxHistory: getEnvAsInt("SESSION_MAX_HISTORY", 20),
			TTLHours:   getEnvAsInt("SESSION_TIMEOUT_HOURS", 24),
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
