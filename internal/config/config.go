// ABOUTME: Centralized configuration for the documentation agent
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default endpoint of the completion/embedding service (GigaChat speaks the
// OpenAI protocol).
const DefaultServiceURL = "https://gigachat.devices.sberbank.ru/api/v1"

// Config holds all configuration for the agent.
type Config struct {
	// Document settings
	DocumentPath      string
	KnowledgeBasePath string

	// Completion/embedding service settings
	ServiceURL     string
	AccessToken    string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	TopK          int
	MaxIterations int

	// Question cache database path; empty uses the XDG default location.
	CacheDBPath string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DocumentPath:      getEnv("DOCAGENT_DOCUMENT", "file.txt"),
		KnowledgeBasePath: os.Getenv("DOCAGENT_KNOWLEDGE_BASE"),
		ServiceURL:        getEnv("DOCAGENT_SERVICE_URL", DefaultServiceURL),
		AccessToken:       os.Getenv("GIGACHAT_ACCESS_TOKEN"),
		ChatModel:         getEnv("DOCAGENT_CHAT_MODEL", "GigaChat"),
		EmbeddingModel:    getEnv("DOCAGENT_EMBEDDING_MODEL", "Embeddings"),
		Timeout:           getEnvDuration("DOCAGENT_TIMEOUT", 60*time.Second),
		MaxRetries:        getEnvInt("DOCAGENT_MAX_RETRIES", 3),
		RetryDelay:        getEnvDuration("DOCAGENT_RETRY_DELAY", 2*time.Second),
		TopK:              getEnvInt("DOCAGENT_TOP_K", 5),
		MaxIterations:     getEnvInt("DOCAGENT_MAX_ITERATIONS", 3),
		CacheDBPath:       os.Getenv("DOCAGENT_CACHE_DB"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.TopK < 1 || c.TopK > 50 {
		return fmt.Errorf("DOCAGENT_TOP_K must be 1-50, got %d", c.TopK)
	}
	if c.MaxIterations < 1 || c.MaxIterations > 10 {
		return fmt.Errorf("DOCAGENT_MAX_ITERATIONS must be 1-10, got %d", c.MaxIterations)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("DOCAGENT_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
