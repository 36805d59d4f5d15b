package ai

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/johnquangdev/meeting-digest/pkg/config"
)

// Lifecycle controls when a model handle loads its model.
//
// LoadOnce pays the load cost at startup and holds the model for the process
// lifetime; LoadPerCall pays it on every request and holds nothing between
// requests. What "load" covers depends on the backend: the Hugging Face client
// and the AssemblyAI client only build an HTTP client, and the whisper
// transcriber only checks the weights file. whisper-cli reads the weights on
// every invocation, so for that backend LoadOnce does not avoid the per-call
// model load.
type Lifecycle string

const (
	// LoadOnce loads on first use (or Warm) and keeps the model for the process lifetime
	LoadOnce Lifecycle = config.LifecycleLoadOnce
	// LoadPerCall loads a fresh model for every call and releases it afterwards
	LoadPerCall Lifecycle = config.LifecycleLoadPerCall
)

// Loader constructs a ready-to-use model
type Loader[T any] func(ctx context.Context) (T, error)

// Handle owns the lifetime of one model.
// A load-once model is read-only after load and may be shared across requests.
type Handle[T any] struct {
	name      string
	lifecycle Lifecycle
	load      Loader[T]

	mu     sync.Mutex
	model  T
	loaded bool
}

// NewHandle creates a handle; nothing is loaded until Warm or Acquire
func NewHandle[T any](name string, lifecycle Lifecycle, load Loader[T]) *Handle[T] {
	if lifecycle != LoadPerCall {
		lifecycle = LoadOnce
	}
	return &Handle[T]{name: name, lifecycle: lifecycle, load: load}
}

// Name returns the model name used in logs and errors
func (h *Handle[T]) Name() string {
	return h.name
}

// Lifecycle returns the configured lifecycle
func (h *Handle[T]) Lifecycle() Lifecycle {
	return h.lifecycle
}

// Warm loads a load-once model eagerly. It is a no-op for load-per-call handles.
func (h *Handle[T]) Warm(ctx context.Context) error {
	if h.lifecycle == LoadPerCall {
		return nil
	}
	_, err := h.shared(ctx)
	return err
}

// Acquire returns a model and a release func that must be called when the caller is done.
// A failed load-once attempt is not cached; the next Acquire tries again.
func (h *Handle[T]) Acquire(ctx context.Context) (T, func(), error) {
	if h.lifecycle == LoadOnce {
		model, err := h.shared(ctx)
		return model, func() {}, err
	}

	model, err := h.load(ctx)
	if err != nil {
		var zero T
		return zero, func() {}, fmt.Errorf("load %s model: %w", h.name, err)
	}
	return model, func() { closeModel(model) }, nil
}

func (h *Handle[T]) shared(ctx context.Context) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.loaded {
		return h.model, nil
	}
	model, err := h.load(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s model: %w", h.name, err)
	}
	h.model = model
	h.loaded = true
	return model, nil
}

// Close releases a loaded load-once model
func (h *Handle[T]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.loaded {
		return nil
	}
	var zero T
	model := h.model
	h.model, h.loaded = zero, false
	if c, ok := any(model).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func closeModel(model any) {
	if c, ok := model.(io.Closer); ok {
		c.Close()
	}
}

// Transcriber turns a media file into plain text
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Summarizer condenses text with a sequence-to-sequence model
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ManagedTranscriber acquires a transcriber from its handle for every call
type ManagedTranscriber struct {
	handle *Handle[Transcriber]
}

// NewManagedTranscriber wraps h as a Transcriber
func NewManagedTranscriber(h *Handle[Transcriber]) *ManagedTranscriber {
	return &ManagedTranscriber{handle: h}
}

// Transcribe implements Transcriber
func (m *ManagedTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	t, release, err := m.handle.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()
	return t.Transcribe(ctx, path)
}

// ManagedSummarizer acquires a summarizer from its handle for every call
type ManagedSummarizer struct {
	handle *Handle[Summarizer]
}

// NewManagedSummarizer wraps h as a Summarizer
func NewManagedSummarizer(h *Handle[Summarizer]) *ManagedSummarizer {
	return &ManagedSummarizer{handle: h}
}

// Summarize implements Summarizer
func (m *ManagedSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s, release, err := m.handle.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()
	return s.Summarize(ctx, text)
}
