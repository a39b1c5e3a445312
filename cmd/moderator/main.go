// moderator classifies a batch of user comments with an LLM and writes an
// annotated export, a summary and optional distribution charts.
//
// Usage:
//
//	moderator [--input-file <path>] [--output-file <path>] [--filter-offensive] [--no-create-plots] [--plot-format html|png]
//	moderator check
//	moderator serve [--addr :8080]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/VikasCh3108/AI-Moderation11/internal/chart"
	"github.com/VikasCh3108/AI-Moderation11/internal/profanity"
	"github.com/VikasCh3108/AI-Moderation11/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	defaultInputFile  = "data/comments.json"
	defaultOutputFile = "output/analyzed_comments.json"
	defaultPlotFormat = "html"
	defaultDotEnv     = ".env"
)

type globalFlags struct {
	configPath string
	verbose    bool
}

type moderateFlags struct {
	inputFile         string
	outputFile        string
	filterOffensive   bool
	noFilterOffensive bool
	createPlots       bool
	noCreatePlots     bool
	plotFormat        string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	m := &moderateFlags{}

	cmd := &cobra.Command{
		Use:   "moderator",
		Short: "Classify user comments for offensive content",
		Long: `Loads comments from a JSON file, asks the configured LLM provider to
classify each one, and writes the annotated comments, a summary and
optional distribution charts.

The provider key is read from OPENAI_API_KEY (or GEMINI_API_KEY with
provider type gemini). A .env file in the working directory is loaded
first. Comments that cannot be classified are kept with offense type
"error" and the run continues.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runModerate(cmd, g, m)
		},
	}
	cmd.Version = version

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "Path to YAML config file (optional)")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	f := cmd.Flags()
	f.StringVar(&m.inputFile, "input-file", defaultInputFile, "Path to input JSON file containing comments")
	f.StringVar(&m.outputFile, "output-file", defaultOutputFile, "Path to output JSON file")
	f.BoolVar(&m.filterOffensive, "filter-offensive", false, "Only export offensive comments")
	f.BoolVar(&m.noFilterOffensive, "no-filter-offensive", false, "Export all comments")
	f.BoolVar(&m.createPlots, "create-plots", true, "Create distribution charts")
	f.BoolVar(&m.noCreatePlots, "no-create-plots", false, "Skip distribution charts")
	f.StringVar(&m.plotFormat, "plot-format", defaultPlotFormat, "Chart format: html or png")
	cmd.MarkFlagsMutuallyExclusive("filter-offensive", "no-filter-offensive")
	cmd.MarkFlagsMutuallyExclusive("create-plots", "no-create-plots")

	cmd.AddCommand(newCheckCmd(g))
	cmd.AddCommand(newServeCmd(g))

	return cmd
}

// options resolves the paired --x / --no-x flags into pipeline options
func (m *moderateFlags) options() service.Options {
	return service.Options{
		InputFile:       m.inputFile,
		OutputFile:      m.outputFile,
		FilterOffensive: m.filterOffensive && !m.noFilterOffensive,
		CreatePlots:     m.createPlots && !m.noCreatePlots,
		PlotFormat:      m.plotFormat,
	}
}

func runModerate(cmd *cobra.Command, g *globalFlags, m *moderateFlags) error {
	opts := m.options()

	// validated before any provider call
	renderer, err := chart.NewRenderer(opts.PlotFormat)
	if err != nil {
		return err
	}

	logger, err := newLogger(g.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return err
	}

	var llmClient service.LLMClient
	if provider := newProvider(cfg, logger); provider != nil {
		defer provider.Close()
		llmClient = provider
	}

	var store service.RunStore
	if repo := openRepository(cfg.Database.Path, logger); repo != nil {
		defer repo.Close()
		store = repo
	}

	pipeline := service.NewPipeline(
		service.NewClassifier(llmClient, logger),
		profanity.NewFilter(),
		renderer,
		store,
		cmd.OutOrStdout(),
		logger,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	logger.Debug("Run finished",
		zap.String("run_id", result.RunID),
		zap.Int("exported", len(result.Comments)),
		zap.Strings("charts", result.ChartFiles))

	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
