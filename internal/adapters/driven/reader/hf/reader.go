// Package hf provides an extractive question-answering reader backed by a
// Hugging Face inference endpoint. The reader receives a question and a
// passage and returns the span of the passage most likely to answer it,
// together with a model confidence score.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api-inference.huggingface.co/models"
	DefaultModel   = "mrm8488/distill-bert-base-spanish-wwm-cased-finetuned-spa-squad2-es"
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond keeps the adapter under the free-tier
	// inference API quota.
	DefaultRequestsPerSecond = 2
)

// Config holds configuration for the Hugging Face reader.
type Config struct {
	// Token is the Hugging Face API token. Optional for public models,
	// but unauthenticated requests are heavily throttled.
	Token string

	// BaseURL is the inference API base URL (default: the public
	// Hugging Face inference endpoint). Can point at a self-hosted
	// text-inference deployment.
	BaseURL string

	// Model is the question-answering model to query (default: a
	// Spanish SQuAD2-finetuned DistilBERT).
	Model string

	// Timeout bounds each request (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond caps the outgoing request rate (default: 2).
	RequestsPerSecond float64
}

// Reader extracts answer spans from passages via a remote QA model.
type Reader struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	token   string
	model   string
}

// qaRequest is the inference API request format for question answering.
type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// qaResponse is the inference API response format.
type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Error  string  `json:"error,omitempty"`
}

// NewReader creates a new Hugging Face question-answering reader.
func NewReader(cfg Config) *Reader {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Reader{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		model:   cfg.Model,
	}
}

// Extract returns the span of passage that best answers question.
// Failures are reported as domain.ErrReaderUnavailable so callers can
// degrade to template-based answers.
func (r *Reader) Extract(ctx context.Context, question, passage string) (driven.Span, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return driven.Span{}, fmt.Errorf("hf: rate limit wait: %v: %w", err, domain.ErrReaderUnavailable)
	}

	reqBody := qaRequest{
		Inputs: qaInputs{
			Question: question,
			Context:  passage,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return driven.Span{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/"+r.model,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return driven.Span{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return driven.Span{}, fmt.Errorf("hf: %v: %w", err, domain.ErrReaderUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return driven.Span{}, fmt.Errorf("hf: read response: %v: %w", err, domain.ErrReaderUnavailable)
	}

	var qaResp qaResponse
	if err := json.Unmarshal(body, &qaResp); err != nil {
		return driven.Span{}, fmt.Errorf("hf: decode response: %v: %w", err, domain.ErrReaderUnavailable)
	}

	if qaResp.Error != "" {
		return driven.Span{}, fmt.Errorf("hf: %s: %w", qaResp.Error, domain.ErrReaderUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		return driven.Span{}, fmt.Errorf("hf: status %d: %s: %w", resp.StatusCode, string(body), domain.ErrReaderUnavailable)
	}

	return driven.Span{
		Text:  qaResp.Answer,
		Score: qaResp.Score,
	}, nil
}

// ModelName returns the name of the QA model being used.
func (r *Reader) ModelName() string {
	return r.model
}

// Close releases resources.
func (r *Reader) Close() error {
	return nil
}
