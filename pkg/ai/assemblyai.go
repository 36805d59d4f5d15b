package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/pkg/config"
)

// AssemblyAITranscriber uploads media to AssemblyAI and waits for the transcript
type AssemblyAITranscriber struct {
	client   *aai.Client
	language string
	logger   *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber using the provided config.
// An empty key falls back to ASSEMBLYAI_API_KEY.
func NewAssemblyAITranscriber(cfg config.TranscriptionConfig, logger *zap.Logger) (*AssemblyAITranscriber, error) {
	apiKey := cfg.AssemblyAIKey
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("assemblyai api key not configured")
	}

	opts := []aai.ClientOption{aai.WithAPIKey(apiKey)}
	if cfg.AssemblyAIURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.AssemblyAIURL))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AssemblyAITranscriber{
		client:   aai.NewClientWithOptions(opts...),
		language: cfg.WhisperLanguage,
		logger:   logger,
	}, nil
}

// NewAssemblyAILoader returns a Loader for use with a Handle
func NewAssemblyAILoader(cfg config.TranscriptionConfig, logger *zap.Logger) Loader[Transcriber] {
	return func(ctx context.Context) (Transcriber, error) {
		return NewAssemblyAITranscriber(cfg, logger)
	}
}

// Transcribe uploads the file and blocks until AssemblyAI finishes
func (a *AssemblyAITranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	params := &aai.TranscriptOptionalParams{}
	if a.language == "" || a.language == "auto" {
		params.LanguageDetection = aai.Bool(true)
	} else {
		params.LanguageCode = aai.TranscriptLanguageCode(a.language)
	}

	a.logger.Info("🎙️ Starting AssemblyAI transcription",
		zap.String("file", filepath.Base(path)),
		zap.String("language", a.language),
	)

	transcript, err := a.client.Transcripts.TranscribeFromReader(ctx, f, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcribe: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcribe: %s", reason)
	}

	var text string
	if transcript.Text != nil {
		text = strings.TrimSpace(*transcript.Text)
	}

	a.logger.Info("✅ AssemblyAI transcription completed", zap.Int("transcript_length", len(text)))
	return text, nil
}
