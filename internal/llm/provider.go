package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/gemini"
	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/openai"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ProviderType represents the type of LLM provider
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
)

// ProviderConfig holds configuration for the classification provider
type ProviderConfig struct {
	Type      ProviderType  `yaml:"type"`
	APIKey    string        `yaml:"api_key"`
	ModelName string        `yaml:"model_name"`
	BaseURL   string        `yaml:"base_url"` // OpenAI-compatible endpoints only
	Timeout   time.Duration `yaml:"timeout"`
	// Rate limiting, 0 disables it
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// Provider interface for any LLM provider
type Provider interface {
	Classify(ctx context.Context, text string) (*models.Verdict, error)
	Close() error
	GetModelInfo() map[string]interface{}
}

// NewProvider builds the configured provider, wrapped with rate limiting
// when RequestsPerMinute is set
func NewProvider(cfg ProviderConfig, logger *zap.Logger) (Provider, error) {
	var provider Provider
	var err error

	switch cfg.Type {
	case ProviderOpenAI, "":
		provider, err = openai.NewClient(openai.Config{
			APIKey:    cfg.APIKey,
			ModelName: cfg.ModelName,
			BaseURL:   cfg.BaseURL,
			Timeout:   cfg.Timeout,
		}, logger)
	case ProviderGemini:
		provider, err = gemini.NewClient(gemini.Config{
			APIKey:    cfg.APIKey,
			ModelName: cfg.ModelName,
			Timeout:   cfg.Timeout,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown provider type %q", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerMinute > 0 {
		provider = NewRateLimitedProvider(provider, cfg.RequestsPerMinute, logger)
	}

	return provider, nil
}

// RateLimitedProvider wraps a provider with rate limiting
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewRateLimitedProvider wraps a provider with rate limiting
func NewRateLimitedProvider(provider Provider, requestsPerMinute int, logger *zap.Logger) *RateLimitedProvider {
	logger.Info("Rate limiting enabled", zap.Int("requests_per_minute", requestsPerMinute))
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		logger:   logger,
	}
}

func (p *RateLimitedProvider) Classify(ctx context.Context, text string) (*models.Verdict, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	return p.provider.Classify(ctx, text)
}

func (p *RateLimitedProvider) Close() error {
	return p.provider.Close()
}

func (p *RateLimitedProvider) GetModelInfo() map[string]interface{} {
	info := p.provider.GetModelInfo()
	info["requests_per_minute"] = p.limiter.Limit() * 60
	return info
}
