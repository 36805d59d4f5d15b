package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/pkg/config"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co"

// HuggingFaceClient is a minimal client for the Hugging Face Inference API summarization task
type HuggingFaceClient struct {
	apiKey    string
	baseURL   string
	model     string
	maxLength int
	minLength int
	retryWait time.Duration
	client    *http.Client
	logger    *zap.Logger
}

// NewHuggingFaceClient creates a client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewHuggingFaceClient(cfg *config.SummarizationConfig, logger *zap.Logger) *HuggingFaceClient {
	c := &HuggingFaceClient{
		model:     "facebook/bart-large-cnn",
		maxLength: 150,
		minLength: 30,
		retryWait: 2 * time.Second,
		client:    &http.Client{Timeout: 120 * time.Second},
		logger:    logger,
	}
	if cfg != nil {
		c.apiKey = cfg.APIKey
		c.baseURL = cfg.BaseURL
		if cfg.Model != "" {
			c.model = cfg.Model
		}
		if cfg.MaxLength > 0 {
			c.maxLength = cfg.MaxLength
			c.minLength = cfg.MinLength
		}
		if cfg.Timeout > 0 {
			c.client.Timeout = cfg.Timeout
		}
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("HF_API_TOKEN")
	}
	if c.baseURL == "" {
		c.baseURL = os.Getenv("HF_API_URL")
		if c.baseURL == "" {
			c.baseURL = defaultHuggingFaceURL
		}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// NewHuggingFaceLoader returns a Loader for use with a Handle
func NewHuggingFaceLoader(cfg config.SummarizationConfig, logger *zap.Logger) Loader[Summarizer] {
	return func(ctx context.Context) (Summarizer, error) {
		return NewHuggingFaceClient(&cfg, logger), nil
	}
}

// Model returns the model id requests are sent to
func (h *HuggingFaceClient) Model() string {
	return h.model
}

// SummarizeRequest is the payload for the summarization task
type SummarizeRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters SummarizeParameters `json:"parameters"`
	Options    RequestOptions      `json:"options"`
}

// SummarizeParameters are the generation bounds
type SummarizeParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

// RequestOptions control inference API behaviour
type RequestOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// SummarizeResponse is one element of the response array
type SummarizeResponse struct {
	SummaryText string `json:"summary_text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// retryableError marks upstream responses worth another attempt (model loading, rate limit)
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Summarize sends text to the configured model and returns the condensed text.
// Deterministic decoding: do_sample is always false.
func (h *HuggingFaceClient) Summarize(ctx context.Context, text string) (string, error) {
	reqBody := SummarizeRequest{
		Inputs: text,
		Parameters: SummarizeParameters{
			MaxLength: h.maxLength,
			MinLength: h.minLength,
			DoSample:  false,
		},
		Options: RequestOptions{WaitForModel: true},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var summary string
	call := func() error {
		s, err := h.post(ctx, b)
		if err != nil {
			var re *retryableError
			if errors.As(err, &re) {
				h.logger.Warn("⏳ Summarization model not ready, retrying",
					zap.String("model", h.model),
					zap.Error(err),
				)
				return err
			}
			return backoff.Permanent(err)
		}
		summary = s
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = h.retryWait
	bo.MaxInterval = 5 * h.retryWait
	bo.MaxElapsedTime = h.client.Timeout

	if err := backoff.Retry(call, backoff.WithContext(backoff.WithMaxRetries(bo, 3), ctx)); err != nil {
		return "", err
	}
	return summary, nil
}

func (h *HuggingFaceClient) post(ctx context.Context, body []byte) (string, error) {
	endpoint := h.baseURL + "/models/" + h.model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		msg := fmt.Sprintf("huggingface returned status %d", resp.StatusCode)
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			msg = fmt.Sprintf("%s: %s", msg, er.Error)
		}
		err := errors.New(msg)
		if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests {
			return "", &retryableError{err: err}
		}
		return "", err
	}

	var out []SummarizeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode huggingface response: %w", err)
	}
	if len(out) == 0 {
		return "", fmt.Errorf("empty response from huggingface")
	}
	return out[0].SummaryText, nil
}
