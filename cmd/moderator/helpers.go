package main

import (
	"os"
	"path/filepath"

	"github.com/VikasCh3108/AI-Moderation11/internal/config"
	"github.com/VikasCh3108/AI-Moderation11/internal/llm"
	"github.com/VikasCh3108/AI-Moderation11/internal/repository"

	"go.uber.org/zap"
)

// newLogger builds a development logger on stderr so stdout stays the summary
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableStacktrace = true
	}
	return cfg.Build()
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(defaultDotEnv); err != nil {
		return nil, err
	}
	return config.LoadConfig(path)
}

// newProvider returns nil when no provider can be built. Every comment then
// gets the error verdict instead of aborting the run.
func newProvider(cfg *config.Config, logger *zap.Logger) llm.Provider {
	if cfg.Provider.APIKey == "" {
		logger.Warn("API key not found, every comment will be marked as error",
			zap.String("env", cfg.KeyEnvVar()))
		return nil
	}

	provider, err := llm.NewProvider(cfg.Provider, logger)
	if err != nil {
		logger.Warn("Failed to initialize provider, every comment will be marked as error",
			zap.String("provider", string(cfg.Provider.Type)),
			zap.Error(err))
		return nil
	}

	return provider
}

// openRepository opens run history; an empty path disables it
func openRepository(path string, logger *zap.Logger) *repository.RunRepository {
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("Failed to create database directory", zap.String("dir", dir), zap.Error(err))
			return nil
		}
	}

	repo, err := repository.NewRunRepository(path, logger)
	if err != nil {
		logger.Warn("Run history disabled", zap.String("db_path", path), zap.Error(err))
		return nil
	}
	return repo
}
