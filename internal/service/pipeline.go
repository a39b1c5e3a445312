package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/chart"
	"github.com/VikasCh3108/AI-Moderation11/internal/export"
	"github.com/VikasCh3108/AI-Moderation11/internal/loader"
	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfanityChecker is the local pre-filter
type ProfanityChecker interface {
	Contains(text string) bool
}

// RunStore records finished runs
type RunStore interface {
	SaveRun(run *models.Run, comments []models.Comment) error
}

// Options for a single pipeline run
type Options struct {
	InputFile       string
	OutputFile      string
	FilterOffensive bool
	CreatePlots     bool
	PlotFormat      string
}

// Result describes what a run produced
type Result struct {
	RunID      string
	Report     models.Report
	Comments   []models.Comment // as exported (filtered when requested)
	OutputFile string
	ChartFiles []string
}

// Pipeline loads, classifies, aggregates and exports one batch of comments
type Pipeline struct {
	classifier *Classifier
	profanity  ProfanityChecker
	renderer   chart.Renderer
	store      RunStore
	out        io.Writer
	logger     *zap.Logger
}

// NewPipeline creates a pipeline. renderer and store may be nil; without a
// renderer no charts are drawn, without a store runs are not recorded.
func NewPipeline(
	classifier *Classifier,
	profanity ProfanityChecker,
	renderer chart.Renderer,
	store RunStore,
	out io.Writer,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		profanity:  profanity,
		renderer:   renderer,
		store:      store,
		out:        out,
		logger:     logger,
	}
}

// Run executes the whole pipeline. Only load and export failures are
// returned; classification, chart and history failures are logged.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	startedAt := time.Now()
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))

	if err := export.EnsureDir(opts.OutputFile); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out, "Loading comments...")
	comments, err := loader.LoadComments(opts.InputFile)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Loaded %d comments\n", len(comments))

	fmt.Fprintln(p.out, "\nAnalyzing comments...")
	failed := p.annotate(ctx, comments, logger)

	rep := report.Generate(comments)

	exported := comments
	outputFile := opts.OutputFile
	if opts.FilterOffensive {
		exported = report.FilterOffensive(comments)
		outputFile = export.OffensivePath(outputFile)
	}

	if err := export.WriteJSON(outputFile, exported); err != nil {
		return nil, err
	}
	logger.Info("Results exported",
		zap.String("path", outputFile),
		zap.Int("count", len(exported)))

	result := &Result{
		RunID:      runID,
		Report:     rep,
		Comments:   exported,
		OutputFile: outputFile,
	}

	if opts.CreatePlots && len(rep.OffenseTypes) > 0 {
		result.ChartFiles = p.renderCharts(rep, exported, outputFile, opts.PlotFormat, logger)
	}

	if p.store != nil {
		finishedAt := time.Now()
		run := &models.Run{
			ID:                runID,
			InputFile:         opts.InputFile,
			OutputFile:        outputFile,
			Provider:          p.classifier.Provider(),
			ModelVersion:      p.classifier.Model(),
			TotalComments:     rep.TotalComments,
			OffensiveComments: rep.OffensiveComments,
			FailedComments:    failed,
			StartedAt:         startedAt,
			FinishedAt:        &finishedAt,
		}
		if err := p.store.SaveRun(run, comments); err != nil {
			logger.Error("Failed to record run", zap.Error(err))
		}
	}

	PrintSummary(p.out, rep, outputFile)

	logger.Info("Run completed",
		zap.Int("total", rep.TotalComments),
		zap.Int("offensive", rep.OffensiveComments),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(startedAt)))

	return result, nil
}

// annotate fills in the derived fields of every comment, in order.
// It returns how many classifications failed.
func (p *Pipeline) annotate(ctx context.Context, comments []models.Comment, logger *zap.Logger) int {
	failed := 0
	for i := range comments {
		c := &comments[i]
		c.ContainsProfanity = p.profanity.Contains(c.CommentText)

		verdict := p.classifier.Classify(ctx, c.CommentText)
		if verdict.OffenseType == models.Error {
			failed++
		}
		c.Apply(verdict)

		logger.Debug("Comment analyzed",
			zap.Int("index", i),
			zap.String("username", c.Username),
			zap.Bool("offensive", c.IsOffensive),
			zap.String("offense_type", string(c.OffenseType)))
	}
	return failed
}

// renderCharts draws both charts; a failed chart is logged and skipped.
// The severity chart is drawn from the exported comments.
func (p *Pipeline) renderCharts(rep models.Report, exported []models.Comment, outputFile, format string, logger *zap.Logger) []string {
	if p.renderer == nil {
		logger.Warn("No chart renderer configured, skipping plots")
		return nil
	}

	var files []string

	offensePath := export.ChartPath(outputFile, export.OffenseDistributionName, format)
	if err := p.renderer.RenderBar(offensePath, report.TypeCounts(rep)); err != nil {
		logger.Error("Failed to render offense distribution", zap.Error(err))
	} else {
		files = append(files, offensePath)
		fmt.Fprintf(p.out, "\nOffense type distribution chart saved as '%s'\n", offensePath)
	}

	severityPath := export.ChartPath(outputFile, export.SeverityDistributionName, format)
	if err := p.renderer.RenderPie(severityPath, report.SeverityCounts(exported)); err != nil {
		logger.Error("Failed to render severity distribution", zap.Error(err))
	} else {
		files = append(files, severityPath)
		fmt.Fprintf(p.out, "Severity distribution chart saved as '%s'\n", severityPath)
	}

	return files
}
