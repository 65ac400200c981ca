// Package config provides configuration loading and validation for the roadmap agent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/career-roadmap/internal/logger"
)

// Corpus source values
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Embedding provider values
const (
	ProviderHashing = "hashing"
	ProviderGemini  = "gemini"
)

// Config is the full agent configuration. Every field has a default, see Default.
type Config struct {
	DataDir            string `yaml:"data_dir"`
	CorpusPath         string `yaml:"corpus_path"`
	CorpusSource       string `yaml:"corpus_source"` // file or postgres
	AllowBuiltinCorpus bool   `yaml:"allow_builtin_corpus"`
	DatabaseURL        string `yaml:"database_url"`
	GeminiAPIKey       string `yaml:"gemini_api_key"`

	Index   IndexConfig   `yaml:"index"`
	Roadmap RoadmapConfig `yaml:"roadmap"`
	Export  ExportConfig  `yaml:"export"`
	Server  ServerConfig  `yaml:"server"`
	Queue   QueueConfig   `yaml:"queue"`
	Logger  logger.Config `yaml:"logger"`
}

// IndexConfig configures the semantic skill index.
type IndexConfig struct {
	Path       string  `yaml:"path"`
	Provider   string  `yaml:"provider"` // hashing or gemini
	Model      string  `yaml:"model"`
	Dimensions int     `yaml:"dimensions"`
	Threshold  float64 `yaml:"threshold"`
}

// RoadmapConfig configures roadmap synthesis.
type RoadmapConfig struct {
	// Seed fixes task sampling; 0 draws a fresh seed per request.
	Seed uint64 `yaml:"seed"`
}

// ExportConfig configures persisted artifacts.
type ExportConfig struct {
	OutputDir  string   `yaml:"output_dir"`
	LatestPath string   `yaml:"latest_path"`
	StaticDir  string   `yaml:"static_dir"`
	StaticURL  string   `yaml:"static_url"`
	PNG        bool     `yaml:"png"`
	S3         S3Config `yaml:"s3"`
}

// S3Config configures the optional object storage sink. Empty Bucket disables it.
type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int             `yaml:"port"`
	MaxUploadBytes int64           `yaml:"max_upload_bytes"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures per-client token buckets. Endpoint-specific
// limits live in the ratelimit package.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"`
	DefaultLimit    int           `yaml:"default_limit"`
	DefaultWindow   time.Duration `yaml:"default_window"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
	Whitelist       []string      `yaml:"whitelist"`
	Blacklist       []string      `yaml:"blacklist"`
}

// QueueConfig configures the RabbitMQ worker.
type QueueConfig struct {
	URL          string `yaml:"url"`
	RequestQueue string `yaml:"request_queue"`
	Prefetch     int    `yaml:"prefetch"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DataDir:            "data",
		CorpusPath:         filepath.Join("data", "careers.json"),
		CorpusSource:       SourceFile,
		AllowBuiltinCorpus: true,
		Index: IndexConfig{
			Path:       filepath.Join("embeddings", "skill_index.json"),
			Provider:   ProviderHashing,
			Model:      "text-embedding-004",
			Dimensions: 256,
			Threshold:  0.6,
		},
		Export: ExportConfig{
			OutputDir:  "outputs",
			LatestPath: "generated_roadmaps_output.json",
			StaticDir:  filepath.Join("static", "roadmaps"),
			StaticURL:  "/static/roadmaps",
		},
		Server: ServerConfig{
			Port:           8000,
			MaxUploadBytes: 512 << 20,
			RateLimit: RateLimitConfig{
				Enabled:         true,
				DefaultLimit:    1000,
				DefaultWindow:   time.Minute,
				CleanupInterval: 5 * time.Minute,
			},
		},
		Queue: QueueConfig{
			RequestQueue: "roadmap_requests",
			Prefetch:     4,
		},
		Logger: logger.Config{Level: "info", Format: "json"},
	}
}

// LoadConfig loads a YAML file on top of the defaults.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides secrets and endpoints from environment variables.
func (c *Config) ApplyEnv() {
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Queue.URL, "RABBITMQ_URL")
	setString(&c.Export.S3.Bucket, "ROADMAP_S3_BUCKET")
	setString(&c.Export.S3.Endpoint, "ROADMAP_S3_ENDPOINT")
	setString(&c.Export.S3.AccessKey, "ROADMAP_S3_ACCESS_KEY")
	setString(&c.Export.S3.SecretKey, "ROADMAP_S3_SECRET_KEY")
	setString(&c.Logger.Level, "LOG_LEVEL")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Server.RateLimit.Enabled = enabled
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.CorpusSource {
	case SourceFile:
		if c.CorpusPath == "" {
			return fmt.Errorf("config error: 'corpus_path' is required for the file corpus source")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres corpus source")
		}
	default:
		return fmt.Errorf("config error: unknown corpus_source %q", c.CorpusSource)
	}

	switch c.Index.Provider {
	case ProviderHashing:
		if c.Index.Dimensions <= 0 {
			return fmt.Errorf("config error: 'index.dimensions' must be positive")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("config error: gemini index provider requires GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("config error: unknown index provider %q", c.Index.Provider)
	}

	if c.Index.Threshold < -1 || c.Index.Threshold > 1 {
		return fmt.Errorf("config error: 'index.threshold' must be within [-1, 1]")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range")
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.DefaultLimit <= 0 || c.Server.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: 'server.rate_limit' needs a positive default_limit and default_window")
	}
	if c.Queue.Prefetch < 0 {
		return fmt.Errorf("config error: 'queue.prefetch' must be non-negative")
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
