package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.App.SecretKey != "dev-key-123" {
		t.Errorf("SecretKey = %q, want dev-key-123", cfg.App.SecretKey)
	}
	if cfg.Database.URL != "sqlite:///meetings.db" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Summarization.Model != "facebook/bart-large-cnn" {
		t.Errorf("Summarization.Model = %q", cfg.Summarization.Model)
	}
	if cfg.Upload.Folder != "uploads" {
		t.Errorf("Upload.Folder = %q", cfg.Upload.Folder)
	}
	if cfg.Summarization.MaxLength != 150 || cfg.Summarization.MinLength != 30 {
		t.Errorf("length bounds = %d/%d, want 150/30", cfg.Summarization.MaxLength, cfg.Summarization.MinLength)
	}
	if cfg.Transcription.Lifecycle != LifecycleLoadPerCall {
		t.Errorf("Transcription.Lifecycle = %q", cfg.Transcription.Lifecycle)
	}
	if cfg.Summarization.Lifecycle != LifecycleLoadOnce {
		t.Errorf("Summarization.Lifecycle = %q", cfg.Summarization.Lifecycle)
	}
	if !cfg.Upload.CleanupOnFailure {
		t.Errorf("CleanupOnFailure should default to true")
	}
	if cfg.Database.AutoMigrate {
		t.Errorf("AutoMigrate should default to false")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/meetings?sslmode=disable")
	t.Setenv("MODEL_NAME", "sshleifer/distilbart-cnn-12-6")
	t.Setenv("HF_TIMEOUT", "45s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}

	if cfg.App.SecretKey != "s3cret" {
		t.Errorf("SecretKey = %q", cfg.App.SecretKey)
	}
	if cfg.Database.URL != "postgres://user:pass@db:5432/meetings?sslmode=disable" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Summarization.Model != "sshleifer/distilbart-cnn-12-6" {
		t.Errorf("Summarization.Model = %q", cfg.Summarization.Model)
	}
	if cfg.Summarization.Timeout != 45*time.Second {
		t.Errorf("Summarization.Timeout = %v", cfg.Summarization.Timeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name:    "unknown lifecycle",
			env:     map[string]string{"TRANSCRIPTION_LIFECYCLE": "sometimes"},
			wantErr: true,
		},
		{
			name:    "assemblyai without key",
			env:     map[string]string{"TRANSCRIPTION_BACKEND": "assemblyai"},
			wantErr: true,
		},
		{
			name:    "assemblyai with key",
			env:     map[string]string{"TRANSCRIPTION_BACKEND": "assemblyai", "ASSEMBLYAI_API_KEY": "k"},
			wantErr: false,
		},
		{
			name:    "unknown storage backend",
			env:     map[string]string{"STORAGE_BACKEND": "ftp"},
			wantErr: true,
		},
		{
			name:    "min length above max length",
			env:     map[string]string{"SUMMARY_MIN_LENGTH": "200"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			if (err != nil) != tt.wantErr {
				t.Errorf("FromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
