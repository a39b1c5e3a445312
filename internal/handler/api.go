package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunReader is the read side of the run history
type RunReader interface {
	GetRuns() ([]*models.Run, error)
	GetRun(id string) (*models.Run, error)
	GetComments(runID string, offensiveOnly bool) ([]models.Comment, error)
	GetStats() (map[string]interface{}, error)
}

// Handler handles HTTP requests
type Handler struct {
	runs   RunReader
	logger *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(runs RunReader, logger *zap.Logger) *Handler {
	return &Handler{
		runs:   runs,
		logger: logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/runs", h.GetRuns)
		api.GET("/runs/:id", h.GetRun)
		api.GET("/runs/:id/comments", h.GetComments)
		api.GET("/runs/:id/export/csv", h.ExportCSV)
		api.GET("/stats", h.GetStats)
	}

	r.GET("/health", h.HealthCheck)
}

// GetRuns returns all recorded runs
func (h *Handler) GetRuns(c *gin.Context) {
	runs, err := h.runs.GetRuns()
	if err != nil {
		h.logger.Error("Failed to get runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}

// GetRun returns a single run
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.runs.GetRun(c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to get run")
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetComments returns the comments of a run, optionally only offensive ones
func (h *Handler) GetComments(c *gin.Context) {
	offensiveOnly, err := parseBoolQuery(c, "offensive")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comments, err := h.runs.GetComments(c.Param("id"), offensiveOnly)
	if err != nil {
		h.respondError(c, err, "failed to get comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   c.Param("id"),
		"comments": comments,
		"total":    len(comments),
	})
}

// ExportCSV exports a run's comments to CSV
func (h *Handler) ExportCSV(c *gin.Context) {
	runID := c.Param("id")
	comments, err := h.runs.GetComments(runID, false)
	if err != nil {
		h.respondError(c, err, "export failed")
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=run_%s.csv", runID))
	c.Status(http.StatusOK)

	if err := writeCommentsCSV(c.Writer, comments); err != nil {
		h.logger.Error("CSV export interrupted",
			zap.String("run_id", runID),
			zap.Int("comments", len(comments)),
			zap.Error(err))
	}
}

// writeCommentsCSV writes a header row and one row per comment. It returns
// the first write or flush error.
func writeCommentsCSV(w io.Writer, comments []models.Comment) error {
	writer := csv.NewWriter(w)

	err := writer.Write([]string{
		"username", "comment_text", "contains_profanity", "is_offensive",
		"offense_type", "severity", "explanation",
	})
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, cm := range comments {
		err := writer.Write([]string{
			cm.Username,
			cm.CommentText,
			strconv.FormatBool(cm.ContainsProfanity),
			strconv.FormatBool(cm.IsOffensive),
			string(cm.OffenseType),
			strconv.Itoa(cm.Severity),
			cm.Explanation,
		})
		if err != nil {
			return fmt.Errorf("failed to write comment %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// GetStats returns offense statistics across runs
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.runs.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "comment-moderator",
	})
}

func (h *Handler) respondError(c *gin.Context, err error, msg string) {
	if errors.Is(err, repository.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	h.logger.Error(msg, zap.String("run_id", c.Param("id")), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func parseBoolQuery(c *gin.Context, key string) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q", key, v)
	}
	return b, nil
}
