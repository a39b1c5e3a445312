package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/config"
	"github.com/VikasCh3108/AI-Moderation11/internal/gemini"
	"github.com/VikasCh3108/AI-Moderation11/internal/llm"
	"github.com/VikasCh3108/AI-Moderation11/internal/openai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	checkMessage = "Hello, this is a test message."
	checkTimeout = 30 * time.Second
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that the configured provider key works",
		Long: `Sends a single test message to the configured provider and reports
whether a reply came back. Only the first 10 characters of the key are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(g.verbose)
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
			defer cancel()

			return runCheck(ctx, cmd.OutOrStdout(), cfg, logger)
		},
	}
}

// runCheck prints the masked key and the provider's reply. A failing
// provider is reported, not returned.
func runCheck(ctx context.Context, w io.Writer, cfg *config.Config, logger *zap.Logger) error {
	fmt.Fprintf(w, "%s: %s\n", cfg.KeyEnvVar(), cfg.MaskedKey())

	reply, err := probe(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(w, "Error testing %s API key:\n%v\n", cfg.Provider.Type, err)
		return nil
	}

	fmt.Fprintln(w, "API Key is working! Response received:")
	fmt.Fprintln(w, reply)
	return nil
}

func probe(ctx context.Context, cfg *config.Config, logger *zap.Logger) (string, error) {
	switch cfg.Provider.Type {
	case llm.ProviderGemini:
		client, err := gemini.NewClient(gemini.Config{
			APIKey:    cfg.Provider.APIKey,
			ModelName: cfg.Provider.ModelName,
			Timeout:   cfg.Provider.Timeout,
		}, logger)
		if err != nil {
			return "", err
		}
		defer client.Close()

		verdict, err := client.Classify(ctx, checkMessage)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("offense_type=%s severity=%d: %s",
			verdict.OffenseType, verdict.Severity, verdict.Explanation), nil

	default:
		client, err := openai.NewClient(openai.Config{
			APIKey:    cfg.Provider.APIKey,
			ModelName: cfg.Provider.ModelName,
			BaseURL:   cfg.Provider.BaseURL,
			Timeout:   cfg.Provider.Timeout,
		}, logger)
		if err != nil {
			return "", err
		}
		defer client.Close()

		return client.Complete(ctx, "", checkMessage)
	}
}
