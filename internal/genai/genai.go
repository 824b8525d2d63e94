// Package genai provides chat completions against an OpenAI-compatible endpoint,
// such as a hosted MedGemma inference server.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Defaults for the education model
const (
	DefaultModel       = "google/medgemma-27b-it"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
	DefaultTimeout     = 120 * time.Second
)

// Error variables for GenAI operations
var (
	ErrNoChoicesReturned = errors.New("no choices returned")
	ErrAPIKeyRequired    = errors.New("API key not set")
)

// chatService defines minimal interface for chat completions.
type chatService interface {
	Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error)
}

// modelService lists the models served by the endpoint.
type modelService interface {
	List(ctx context.Context) error
}

// openAIChat adapts the SDK chat completions service to chatService.
type openAIChat struct {
	client openai.Client
}

func (s openAIChat) Create(ctx context.Context, params openai.ChatCompletionNewParams) (openai.ChatCompletion, error) {
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return openai.ChatCompletion{}, err
	}
	return *resp, nil
}

// openAIModels adapts the SDK models service to modelService.
type openAIModels struct {
	client openai.Client
}

func (s openAIModels) List(ctx context.Context) error {
	_, err := s.client.Models.List(ctx)
	return err
}

// Opts holds configuration for the GenAI client.
type Opts struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
	DebugMode   bool
	StateDir    string
}

// Option defines a configuration option for the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the bearer token sent to the endpoint.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithBaseURL points the client at an OpenAI-compatible server. A bare host
// gets the /v1 suffix appended.
func WithBaseURL(url string) Option {
	return func(o *Opts) { o.BaseURL = url }
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Opts) { o.Temperature = t }
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(n int64) Option {
	return func(o *Opts) { o.MaxTokens = n }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// WithDebugMode writes every request and response under StateDir/debug.
func WithDebugMode(enabled bool) Option {
	return func(o *Opts) { o.DebugMode = enabled }
}

// WithStateDir sets the directory for debug logs.
func WithStateDir(dir string) Option {
	return func(o *Opts) { o.StateDir = dir }
}

// Client wraps the chat completion service.
type Client struct {
	chat        chatService
	models      modelService
	model       string
	temperature float64
	maxTokens   int64
	debugMode   bool
	stateDir    string
}

// NewClient initializes a new GenAI client. An API key is required.
func NewClient(opts ...Option) (*Client, error) {
	cfg := Opts{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(normalizeBaseURL(cfg.BaseURL)))
	}
	if cfg.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(cfg.Timeout))
	}
	cli := openai.NewClient(reqOpts...)

	slog.Debug("genai.NewClient: client configured", "model", cfg.Model, "base_url_set", cfg.BaseURL != "", "debug", cfg.DebugMode)
	return &Client{
		chat:        openAIChat{client: cli},
		models:      openAIModels{client: cli},
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		debugMode:   cfg.DebugMode,
		stateDir:    cfg.StateDir,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GeneratePrompt generates a response based on the provided system and user prompts.
func (c *Client) GeneratePrompt(systemPrompt, userPrompt string) (string, error) {
	return c.GeneratePromptWithContext(context.Background(), systemPrompt, userPrompt)
}

// GeneratePromptWithContext generates a response with a caller-supplied context.
func (c *Client) GeneratePromptWithContext(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}

	start := time.Now()
	resp, err := c.chat.Create(ctx, params)
	if err != nil {
		slog.Error("Client.GeneratePromptWithContext: chat completion failed", "model", c.model, "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	c.logDebug("GeneratePromptWithContext", params, resp)

	if len(resp.Choices) == 0 {
		return "", ErrNoChoicesReturned
	}
	content := resp.Choices[0].Message.Content
	slog.Debug("Client.GeneratePromptWithContext: completion received", "model", c.model, "chars", len(content), "elapsed", time.Since(start))
	return content, nil
}

// Ping checks that the endpoint answers a model listing.
func (c *Client) Ping(ctx context.Context) error {
	if c.models == nil {
		return nil
	}
	if err := c.models.List(ctx); err != nil {
		return fmt.Errorf("model endpoint unreachable: %w", err)
	}
	return nil
}

func normalizeBaseURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if !strings.HasSuffix(u, "/v1") {
		u += "/v1"
	}
	return u + "/"
}
