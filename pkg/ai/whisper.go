package ai

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/pkg/config"
	"github.com/johnquangdev/meeting-digest/pkg/executor"
)

// WhisperTranscriber transcribes media locally with ffmpeg and the whisper.cpp CLI
type WhisperTranscriber struct {
	executor executor.Executor
	cfg      config.TranscriptionConfig
	logger   *zap.Logger
}

// NewWhisperTranscriber checks that the model weights exist and returns a transcriber.
// whisper-cli reads the weights on every invocation.
func NewWhisperTranscriber(exec executor.Executor, cfg config.TranscriptionConfig, logger *zap.Logger) (*WhisperTranscriber, error) {
	if _, err := os.Stat(cfg.WhisperModel); err != nil {
		return nil, fmt.Errorf("whisper model: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhisperTranscriber{executor: exec, cfg: cfg, logger: logger}, nil
}

// NewWhisperLoader returns a Loader for use with a Handle
func NewWhisperLoader(exec executor.Executor, cfg config.TranscriptionConfig, logger *zap.Logger) Loader[Transcriber] {
	return func(ctx context.Context) (Transcriber, error) {
		return NewWhisperTranscriber(exec, cfg, logger)
	}
}

// Transcribe converts path to 16 kHz mono WAV and returns the recognized text
func (w *WhisperTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	wavPath, err := w.extractAudio(ctx, path)
	if err != nil {
		return "", err
	}
	defer os.Remove(wavPath)

	// -nt: no timestamps, -np: only the transcript on stdout
	args := []string{
		"-m", w.cfg.WhisperModel,
		"-f", wavPath,
		"-l", w.cfg.WhisperLanguage,
		"-t", strconv.Itoa(w.cfg.WhisperThreads),
		"-nt",
		"-np",
	}

	w.logger.Info("🎙️ Starting whisper transcription",
		zap.String("file", filepath.Base(path)),
		zap.String("model", w.cfg.WhisperModel),
		zap.Int("threads", w.cfg.WhisperThreads),
	)

	out, err := w.executor.Execute(ctx, w.cfg.WhisperBinary, args...)
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	text := joinTranscriptLines(out)
	w.logger.Info("✅ Whisper transcription completed", zap.Int("transcript_length", len(text)))
	return text, nil
}

func (w *WhisperTranscriber) extractAudio(ctx context.Context, path string) (string, error) {
	audioPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_16k.wav"

	args := []string{
		"-i", path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := w.executor.Execute(ctx, w.cfg.FFmpegBinary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return audioPath, nil
}

// joinTranscriptLines collapses whisper's per-segment lines into one paragraph
func joinTranscriptLines(out string) string {
	var parts []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
