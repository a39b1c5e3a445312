package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/VikasCh3108/AI-Moderation11/internal/moderr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer(FormatHTML)
	require.NoError(t, err)
	assert.IsType(t, &HTMLRenderer{}, r)

	r, err = NewRenderer(FormatPNG)
	require.NoError(t, err)
	assert.IsType(t, &PNGRenderer{}, r)

	_, err = NewRenderer("svg")
	assert.Error(t, err)
}

func TestHTMLRenderer(t *testing.T) {
	dir := t.TempDir()
	r := &HTMLRenderer{}

	barPath := filepath.Join(dir, "bar.html")
	require.NoError(t, r.RenderBar(barPath, map[string]int{"toxicity": 3, "harassment": 1}))

	data, err := os.ReadFile(barPath)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, BarTitle)
	assert.Contains(t, html, "toxicity")
	assert.Contains(t, html, "harassment")
	assert.Contains(t, html, "800px")

	piePath := filepath.Join(dir, "pie.html")
	require.NoError(t, r.RenderPie(piePath, map[int]int{2: 1, 4: 3}))

	data, err = os.ReadFile(piePath)
	require.NoError(t, err)
	html = string(data)
	assert.Contains(t, html, PieTitle)
	assert.Contains(t, html, "Severity 2")
	assert.Contains(t, html, "Severity 4")
}

func TestPNGRenderer(t *testing.T) {
	dir := t.TempDir()
	r := &PNGRenderer{}

	barPath := filepath.Join(dir, "bar.png")
	require.NoError(t, r.RenderBar(barPath, map[string]int{"toxicity": 2, "profanity": 2}))
	data, err := os.ReadFile(barPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))

	piePath := filepath.Join(dir, "pie.png")
	require.NoError(t, r.RenderPie(piePath, map[int]int{1: 1, 5: 2}))
	data, err = os.ReadFile(piePath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic))
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()

	for _, format := range Formats {
		r, err := NewRenderer(format)
		require.NoError(t, err)

		var renderErr *moderr.RenderError

		err = r.RenderBar(filepath.Join(dir, "missing", "bar."+format), map[string]int{"toxicity": 1})
		require.True(t, errors.As(err, &renderErr), format)

		err = r.RenderBar(filepath.Join(dir, "empty."+format), map[string]int{})
		require.True(t, errors.As(err, &renderErr), format)

		err = r.RenderPie(filepath.Join(dir, "empty_pie."+format), nil)
		require.True(t, errors.As(err, &renderErr), format)
		assert.Equal(t, "severity distribution", renderErr.Chart)
	}
}

func TestPieItems(t *testing.T) {
	items := pieItems(map[int]int{3: 1, 1: 3, 2: 0})

	require.Len(t, items, 2)
	assert.Equal(t, "Severity 1", items[0].label)
	assert.InDelta(t, 75.0, items[0].percent, 0.001)
	assert.Equal(t, "Severity 3", items[1].label)
	assert.InDelta(t, 25.0, items[1].percent, 0.001)
}

func TestBarItems(t *testing.T) {
	items := barItems(map[string]int{"toxicity": 1, "hate_speech": 2})

	require.Len(t, items, 2)
	assert.Equal(t, "hate_speech", items[0].label)
	assert.Equal(t, 2, items[0].count)
}
