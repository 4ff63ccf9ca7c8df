package notegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// ErrNoAPIKey is returned by NewGemini when no API key is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// GeminiConfig configures a Gemini generator.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string        // overrides the API endpoint, mainly for tests
	Timeout time.Duration // bounds each Generate call when non-zero

	HTTPClient *http.Client
}

// Gemini generates notes with the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini API client.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNoAPIKey)
	}
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model, timeout: cfg.Timeout}, nil
}

// Generate sends req's prompt to the model and returns the markdown text of
// the first candidate. Every failure, including an empty answer, is returned
// as an *Error.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt()), nil)
	if err != nil {
		return "", &Error{Err: err}
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &Error{Err: ErrEmptyResponse}
	}
	return text, nil
}
