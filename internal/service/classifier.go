package service

import (
	"context"
	"errors"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/moderr"

	"go.uber.org/zap"
)

// LLMClient interface for any LLM provider
type LLMClient interface {
	Classify(ctx context.Context, text string) (*models.Verdict, error)
	GetModelInfo() map[string]interface{}
}

var errNoProvider = errors.New("no classification provider configured")

// Classifier turns provider answers into verdicts. It never fails:
// a provider error yields models.ErrorVerdict.
type Classifier struct {
	llmClient LLMClient
	logger    *zap.Logger
}

// NewClassifier creates a classifier. A nil client is allowed; every
// call then yields the error verdict.
func NewClassifier(llmClient LLMClient, logger *zap.Logger) *Classifier {
	return &Classifier{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Classify returns the verdict for text, or the error verdict if the
// provider call or response parsing fails
func (c *Classifier) Classify(ctx context.Context, text string) models.Verdict {
	verdict, err := c.classify(ctx, text)
	if err != nil {
		c.logger.Error("Error analyzing comment", zap.Error(err))
		return models.ErrorVerdict()
	}
	return *verdict
}

func (c *Classifier) classify(ctx context.Context, text string) (*models.Verdict, error) {
	if c.llmClient == nil {
		return nil, &moderr.ClassificationError{Provider: "none", Err: errNoProvider}
	}

	verdict, err := c.llmClient.Classify(ctx, text)
	if err != nil {
		return nil, &moderr.ClassificationError{Provider: c.Provider(), Err: err}
	}
	if verdict == nil {
		return nil, &moderr.ClassificationError{Provider: c.Provider(), Err: errors.New("empty verdict")}
	}
	return verdict, nil
}

// Provider returns the provider name, or "none"
func (c *Classifier) Provider() string {
	provider, _ := c.modelInfo()
	return provider
}

// Model returns the model name, or "unknown"
func (c *Classifier) Model() string {
	_, model := c.modelInfo()
	return model
}

func (c *Classifier) modelInfo() (provider, model string) {
	provider, model = "none", "unknown"
	if c.llmClient == nil {
		return
	}
	info := c.llmClient.GetModelInfo()
	if p, ok := info["provider"].(string); ok {
		provider = p
	}
	if m, ok := info["model"].(string); ok {
		model = m
	}
	return
}
