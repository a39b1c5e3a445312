package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const runID = "6f1c2b9e-8d0a-4a53-9d1e-5f0e0c7a1b11"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupRouterWithLogger(t, zaptest.NewLogger(t))
}

func setupRouterWithLogger(t *testing.T, logger *zap.Logger) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewRunRepository(filepath.Join(t.TempDir(), "runs.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clean := models.NewComment("alice", "nice, thanks")
	clean.Apply(models.Verdict{OffenseType: models.None, Severity: 1, Explanation: "fine"})
	rude := models.NewComment("bob", "get lost")
	rude.Apply(models.Verdict{IsOffensive: true, OffenseType: models.Harassment, Severity: 3, Explanation: "hostile"})

	finished := time.Now()
	require.NoError(t, repo.SaveRun(&models.Run{
		ID:                runID,
		InputFile:         "data/comments.json",
		OutputFile:        "output/analyzed_comments.json",
		Provider:          "openai",
		TotalComments:     2,
		OffensiveComments: 1,
		StartedAt:         finished.Add(-time.Second),
		FinishedAt:        &finished,
	}, []models.Comment{clean, rude}))

	router := gin.New()
	NewHandler(repo, logger).RegisterRoutes(router)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(setupRouter(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestGetRuns(t *testing.T) {
	w := get(setupRouter(t), "/api/v1/runs")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Runs  []models.Run `json:"runs"`
		Total int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, runID, body.Runs[0].ID)
}

func TestGetRun(t *testing.T) {
	router := setupRouter(t)

	w := get(router, "/api/v1/runs/"+runID)
	require.Equal(t, http.StatusOK, w.Code)
	var run models.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Equal(t, 2, run.TotalComments)

	w = get(router, "/api/v1/runs/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetComments(t *testing.T) {
	router := setupRouter(t)

	var body struct {
		Comments []models.Comment `json:"comments"`
		Total    int              `json:"total"`
	}

	w := get(router, "/api/v1/runs/"+runID+"/comments")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)

	w = get(router, "/api/v1/runs/"+runID+"/comments?offensive=true")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "bob", body.Comments[0].Username)

	w = get(router, "/api/v1/runs/"+runID+"/comments?offensive=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(router, "/api/v1/runs/unknown/comments")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSV(t *testing.T) {
	w := get(setupRouter(t), "/api/v1/runs/"+runID+"/export/csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "username", records[0][0])
	assert.Equal(t, []string{"bob", "get lost", "false", "true", "harassment", "3", "hostile"}, records[2])
}

func TestGetStats(t *testing.T) {
	w := get(setupRouter(t), "/api/v1/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["runs"])
	assert.EqualValues(t, 2, stats["comments"])
}

var errBrokenPipe = errors.New("broken pipe")

// brokenResponseWriter accepts headers but fails every body write
type brokenResponseWriter struct {
	header http.Header
	status int
}

func (w *brokenResponseWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *brokenResponseWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

func (w *brokenResponseWriter) WriteHeader(status int) { w.status = status }

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBrokenPipe }

func TestWriteCommentsCSV(t *testing.T) {
	c := models.NewComment("carol", "hi, \"there\"")
	c.Apply(models.ErrorVerdict())

	var buf bytes.Buffer
	require.NoError(t, writeCommentsCSV(&buf, []models.Comment{c}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"carol", `hi, "there"`, "false", "false", "error", "1", "Error in analysis"}, records[1])

	err = writeCommentsCSV(failingWriter{}, []models.Comment{c})
	assert.ErrorIs(t, err, errBrokenPipe)
}

func TestExportCSV_LogsWriteFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	router := setupRouterWithLogger(t, zap.New(core))

	w := &brokenResponseWriter{}
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+runID+"/export/csv", nil))

	entries := logs.FilterMessage("CSV export interrupted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, runID, entries[0].ContextMap()["run_id"])
	assert.Contains(t, entries[0].ContextMap()["error"], "broken pipe")
}
