package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Model lifecycle values accepted by TRANSCRIPTION_LIFECYCLE and SUMMARIZATION_LIFECYCLE
const (
	LifecycleLoadOnce    = "load-once"
	LifecycleLoadPerCall = "load-per-call"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig
	App           AppConfig
	Database      DatabaseConfig
	Upload        UploadConfig
	Storage       StorageConfig
	Transcription TranscriptionConfig
	Summarization SummarizationConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080" validate:"required"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development staging production test"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10" validate:"gte=0"`
	MaxUploadSize   string   `envconfig:"MAX_UPLOAD_SIZE" default:"512M" validate:"required"`
}

// AppConfig holds process-wide secrets
type AppConfig struct {
	SecretKey string `envconfig:"SECRET_KEY" default:"dev-key-123" validate:"required"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL            string        `envconfig:"DATABASE_URL" default:"sqlite:///meetings.db" validate:"required"`
	MaxConns       int           `envconfig:"DB_MAX_CONNS" default:"25" validate:"gte=1"`
	MinConns       int           `envconfig:"DB_MIN_CONNS" default:"5" validate:"gte=0"`
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// UploadConfig holds the transient upload directory settings
type UploadConfig struct {
	Folder           string `envconfig:"UPLOAD_FOLDER" default:"uploads" validate:"required"`
	CleanupOnFailure bool   `envconfig:"UPLOAD_CLEANUP_ON_FAILURE" default:"true"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Backend         string `envconfig:"STORAGE_BACKEND" default:"disk" validate:"oneof=disk minio"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000" validate:"required_if=Backend minio"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-uploads" validate:"required_if=Backend minio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// TranscriptionConfig holds speech-to-text configuration
type TranscriptionConfig struct {
	Backend         string `envconfig:"TRANSCRIPTION_BACKEND" default:"whisper" validate:"oneof=whisper assemblyai"`
	Lifecycle       string `envconfig:"TRANSCRIPTION_LIFECYCLE" default:"load-per-call" validate:"oneof=load-once load-per-call"`
	WhisperBinary   string `envconfig:"WHISPER_BINARY" default:"whisper-cli" validate:"required_if=Backend whisper"`
	WhisperModel    string `envconfig:"WHISPER_MODEL" default:"models/ggml-base.bin" validate:"required_if=Backend whisper"`
	WhisperLanguage string `envconfig:"WHISPER_LANGUAGE" default:"auto"`
	WhisperThreads  int    `envconfig:"WHISPER_THREADS" default:"4" validate:"gte=1"`
	FFmpegBinary    string `envconfig:"FFMPEG_BINARY" default:"ffmpeg"`
	AssemblyAIKey   string `envconfig:"ASSEMBLYAI_API_KEY" validate:"required_if=Backend assemblyai"`
	AssemblyAIURL   string `envconfig:"ASSEMBLYAI_API_URL"`
}

// SummarizationConfig holds summarization model configuration
type SummarizationConfig struct {
	Model     string        `envconfig:"MODEL_NAME" default:"facebook/bart-large-cnn" validate:"required"`
	Lifecycle string        `envconfig:"SUMMARIZATION_LIFECYCLE" default:"load-once" validate:"oneof=load-once load-per-call"`
	APIKey    string        `envconfig:"HF_API_TOKEN"`
	BaseURL   string        `envconfig:"HF_API_URL" default:"https://api-inference.huggingface.co"`
	MaxLength int           `envconfig:"SUMMARY_MAX_LENGTH" default:"150" validate:"gtefield=MinLength"`
	MinLength int           `envconfig:"SUMMARY_MIN_LENGTH" default:"30" validate:"gte=0"`
	Timeout   time.Duration `envconfig:"HF_TIMEOUT" default:"120s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv builds and validates a Config from the current environment only
func FromEnv() (*Config, error) {
	cfg := &Config{}

	sections := []interface{}{
		&cfg.Server,
		&cfg.App,
		&cfg.Database,
		&cfg.Upload,
		&cfg.Storage,
		&cfg.Transcription,
		&cfg.Summarization,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Server.Environment == "production" && c.App.SecretKey == "dev-key-123" {
		log.Printf("Warning: SECRET_KEY is using the development default in production")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
