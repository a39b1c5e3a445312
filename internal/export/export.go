package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/moderr"
)

const (
	OffensiveMarker          = "_offensive"
	OffenseDistributionName  = "_offense_distribution"
	SeverityDistributionName = "_severity_distribution"
)

// WriteJSON writes comments to path as an indented JSON array,
// replacing any existing file
func WriteJSON(path string, comments []models.Comment) error {
	if comments == nil {
		comments = []models.Comment{}
	}

	data, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return &moderr.WriteError{Path: path, Err: fmt.Errorf("failed to encode comments: %w", err)}
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &moderr.WriteError{Path: path, Err: err}
	}
	return nil
}

// EnsureDir creates the directory that will hold path
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &moderr.WriteError{Path: dir, Err: err}
	}
	return nil
}

// OffensivePath inserts the offensive marker before the extension:
// out/a.json -> out/a_offensive.json
func OffensivePath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + OffensiveMarker + ext
}

// ChartPath derives a chart file name from the output file:
// out/a.json, "_severity_distribution", "png" -> out/a_severity_distribution.png
func ChartPath(output, suffix, format string) string {
	stem := strings.TrimSuffix(output, filepath.Ext(output))
	return stem + suffix + "." + format
}
