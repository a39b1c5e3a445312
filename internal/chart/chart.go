// Package chart renders the offense type and severity summaries.
//
// The pipeline only sees the Renderer interface; the HTML and PNG
// implementations are picked by format.
package chart

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/VikasCh3108/AI-Moderation11/internal/moderr"
)

const (
	FormatHTML = "html"
	FormatPNG  = "png"

	Width  = 800
	Height = 600

	BarTitle  = "Distribution of Offense Types"
	BarXLabel = "Offense Type"
	BarYLabel = "Number of Comments"
	PieTitle  = "Severity Distribution of Offensive Comments"

	xLabelRotation = 45
)

// Formats lists the supported output formats
var Formats = []string{FormatHTML, FormatPNG}

// Renderer draws the two summary charts into files
type Renderer interface {
	// RenderBar draws one bar per offense type, height = count
	RenderBar(path string, counts map[string]int) error
	// RenderPie draws one segment per severity present, size = count
	RenderPie(path string, counts map[int]int) error
}

// NewRenderer returns the renderer for format
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case FormatHTML:
		return &HTMLRenderer{}, nil
	case FormatPNG:
		return &PNGRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported plot format %q (want one of %v)", format, Formats)
	}
}

type barItem struct {
	label string
	count int
}

// barItems orders the bars by label so output is deterministic
func barItems(counts map[string]int) []barItem {
	items := make([]barItem, 0, len(counts))
	for label, n := range counts {
		items = append(items, barItem{label: label, count: n})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].label < items[j].label })
	return items
}

type pieItem struct {
	label   string
	count   int
	percent float64
}

func pieItems(counts map[int]int) []pieItem {
	severities := make([]int, 0, len(counts))
	total := 0
	for s, n := range counts {
		if n <= 0 {
			continue
		}
		severities = append(severities, s)
		total += n
	}
	sort.Ints(severities)

	items := make([]pieItem, 0, len(severities))
	for _, s := range severities {
		items = append(items, pieItem{
			label:   SeverityLabel(s),
			count:   counts[s],
			percent: float64(counts[s]) * 100 / float64(total),
		})
	}
	return items
}

// SeverityLabel is the segment name for a severity value
func SeverityLabel(severity int) string {
	return fmt.Sprintf("Severity %d", severity)
}

// writeFile creates path and hands it to render, mapping failures to RenderError
func writeFile(chartName, path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &moderr.RenderError{Chart: chartName, Path: path, Err: err}
	}

	if err := render(f); err != nil {
		f.Close()
		return &moderr.RenderError{Chart: chartName, Path: path, Err: err}
	}

	if err := f.Close(); err != nil {
		return &moderr.RenderError{Chart: chartName, Path: path, Err: err}
	}
	return nil
}
