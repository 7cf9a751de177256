package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Groq      GroqConfig
	Embedding EmbeddingConfig
	Pipeline  PipelineConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GroqConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
}

type EmbeddingConfig struct {
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
}

type PipelineConfig struct {
	Mode        string // "single" or "dual"
	ResultLimit int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	embeddingDims, _ := strconv.Atoi(getEnv("EMBEDDING_DIMENSIONS", "1024"))
	resultLimit, _ := strconv.Atoi(getEnv("PIPELINE_RESULT_LIMIT", "10"))
	temperature, _ := strconv.ParseFloat(getEnv("GROQ_TEMPERATURE", "0"), 32)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "sokoni"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Groq: GroqConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnv("GROQ_MODEL", "llama3-70b-8192"),
			Temperature: float32(temperature),
		},
		Embedding: EmbeddingConfig{
			APIKey:     getEnv("EMBEDDING_API_KEY", ""),
			BaseURL:    getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
			Model:      getEnv("EMBEDDING_MODEL", "embed-english-v3.0"),
			Dimensions: embeddingDims,
		},
		Pipeline: PipelineConfig{
			Mode:        getEnv("PIPELINE_MODE", "single"),
			ResultLimit: resultLimit,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
