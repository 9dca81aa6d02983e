package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/sectify/internal/summarize"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Batch processing
	MaxDocuments  int
	PerDocTimeout time.Duration

	// Ranking
	TopSections int

	// Summarization
	MaxSummarySentences int
	SummaryMethod       string

	// Embedding scorer (optional; keyword semantic scoring when off).
	// An API key switches the endpoint from Ollama to OpenAI-compatible.
	EmbeddingEnabled  bool
	EmbeddingEndpoint string
	EmbeddingModel    string
	EmbeddingAPIKey   string

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("SECTIFY_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxDocuments:  envInt("MAX_DOCUMENTS", 10),
		PerDocTimeout: envDuration("PER_DOC_TIMEOUT", 30*time.Second),

		TopSections: envInt("TOP_SECTIONS", 5),

		MaxSummarySentences: envInt("MAX_SUMMARY_SENTENCES", 3),
		SummaryMethod:       envOr("SUMMARY_METHOD", "hybrid"),

		EmbeddingEnabled:  envBool("EMBEDDING_ENABLED", false),
		EmbeddingEndpoint: envOr("EMBEDDING_ENDPOINT", "http://localhost:11434/api"),
		EmbeddingModel:    envOr("EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingAPIKey:   os.Getenv("EMBEDDING_API_KEY"),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxDocuments <= 0 {
		cfg.MaxDocuments = 10
	}
	if cfg.PerDocTimeout <= 0 {
		cfg.PerDocTimeout = 30 * time.Second
	}
	if cfg.TopSections <= 0 {
		cfg.TopSections = 5
	}
	if cfg.MaxSummarySentences <= 0 {
		cfg.MaxSummarySentences = 3
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings the server cannot run without. CLI runs
// skip it since they need neither auth nor a port.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return &Error{Setting: "SECTIFY_API_KEY", Reason: "required"}
	}
	if _, err := summarize.ParseMethod(c.SummaryMethod); err != nil {
		return &Error{Setting: "SUMMARY_METHOD", Reason: err.Error()}
	}
	if c.EmbeddingEnabled && c.EmbeddingEndpoint == "" {
		return &Error{Setting: "EMBEDDING_ENDPOINT", Reason: "required when EMBEDDING_ENABLED is set"}
	}
	return nil
}

// Error reports an unusable configuration setting.
type Error struct {
	Setting string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Setting, e.Reason)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
