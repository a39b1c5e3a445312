package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/prompt"

	openaisdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"
)

// DefaultModel is used when no model name is configured
const DefaultModel = "gpt-3.5-turbo"

// Client talks to the OpenAI chat completions API or any compatible
// endpoint (Groq, OpenRouter) when BaseURL is set
type Client struct {
	client    openaisdk.Client
	modelName string
	baseURL   string
	logger    *zap.Logger
}

// Config for OpenAI client
type Config struct {
	APIKey    string
	ModelName string
	BaseURL   string        // empty means api.openai.com
	Timeout   time.Duration // 0 keeps the SDK default
}

// NewClient creates a new OpenAI client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// each comment is attempted exactly once
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	logger.Info("OpenAI client initialized",
		zap.String("model", cfg.ModelName),
		zap.String("base_url", cfg.BaseURL))

	return &Client{
		client:    openaisdk.NewClient(opts...),
		modelName: cfg.ModelName,
		baseURL:   cfg.BaseURL,
		logger:    logger,
	}, nil
}

// Close closes the OpenAI client
func (c *Client) Close() error {
	return nil
}

// Complete sends a single user message with an optional system message
// and returns the raw reply text
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openaisdk.SystemMessage(system))
	}
	messages = append(messages, openaisdk.UserMessage(user))

	resp, err := c.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.modelName),
		Messages:    messages,
		Temperature: openaisdk.Float(prompt.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

// Classify sends a single comment for classification. One attempt, no retries.
func (c *Client) Classify(ctx context.Context, text string) (*models.Verdict, error) {
	content, err := c.Complete(ctx, prompt.SystemInstruction, text)
	if err != nil {
		return nil, err
	}

	verdict, err := prompt.ParseVerdict(content)
	if err != nil {
		c.logger.Debug("Unparseable OpenAI response",
			zap.String("response", content),
			zap.Error(err))
		return nil, err
	}

	return verdict, nil
}

// GetModelInfo returns model information
func (c *Client) GetModelInfo() map[string]interface{} {
	info := map[string]interface{}{
		"provider": "openai",
		"model":    c.modelName,
	}
	if c.baseURL != "" {
		info["base_url"] = c.baseURL
	}
	return info
}
