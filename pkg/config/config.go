package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	TextModel TextModelConfig
	Upload    UploadConfig
	Storage   StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// GeminiConfig holds settings for the generative model gateway
type GeminiConfig struct {
	APIKey  string        `envconfig:"GEMINI_API_KEY"`
	BaseURL string        `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com"`
	Model   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	Timeout time.Duration `envconfig:"MODEL_TIMEOUT" default:"120s"`
}

// TextModelConfig selects the provider for text-only prompts.
// Provider "gemini" routes everything through the Gemini gateway;
// "openai" routes text prompts to an OpenAI-compatible endpoint
// (OpenAI, Groq, etc.) while audio stays on Gemini.
type TextModelConfig struct {
	Provider string `envconfig:"TEXT_MODEL_PROVIDER" default:"gemini"`
	APIKey   string `envconfig:"TEXT_MODEL_API_KEY"`
	BaseURL  string `envconfig:"TEXT_MODEL_API_URL"`
	Model    string `envconfig:"TEXT_MODEL_NAME" default:"llama-3.1-70b-versatile"`
}

// UploadConfig holds audio ingest configuration
type UploadConfig struct {
	Dir          string `envconfig:"UPLOAD_DIR" default:"./uploads"`
	TempDir      string `envconfig:"TEMP_DIR" default:"./temp"`
	MaxFileSize  int64  `envconfig:"MAX_FILE_SIZE" default:"104857600"` // 100 MiB
	MaxInFlight  int    `envconfig:"MAX_IN_FLIGHT" default:"2"`
	RecentTTLMin int    `envconfig:"RECENT_UPLOAD_TTL_MINUTES" default:"60"`
}

// StorageConfig holds the optional MinIO archive configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meetscribe-audio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.TextModel.Provider != "gemini" && c.TextModel.Provider != "openai" {
		return fmt.Errorf("TEXT_MODEL_PROVIDER must be \"gemini\" or \"openai\", got %q", c.TextModel.Provider)
	}
	if c.TextModel.Provider == "openai" && c.TextModel.APIKey == "" {
		return fmt.Errorf("TEXT_MODEL_API_KEY is required when TEXT_MODEL_PROVIDER=openai")
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	return nil
}

// RecentTTL returns the retention window for the recent-uploads registry
func (c *Config) RecentTTL() time.Duration {
	return time.Duration(c.Upload.RecentTTLMin) * time.Minute
}
