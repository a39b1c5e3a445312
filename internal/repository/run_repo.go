package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrRunNotFound is returned when a run ID is unknown
var ErrRunNotFound = errors.New("run not found")

// RunRepository stores runs and their annotated comments
type RunRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// commentRow is a comment as stored, keyed by run and input position
type commentRow struct {
	RunID             string             `db:"run_id"`
	Position          int                `db:"position"`
	Username          string             `db:"username"`
	CommentText       string             `db:"comment_text"`
	ContainsProfanity bool               `db:"contains_profanity"`
	IsOffensive       bool               `db:"is_offensive"`
	OffenseType       models.OffenseType `db:"offense_type"`
	Severity          int                `db:"severity"`
	Explanation       string             `db:"explanation"`
}

func (r commentRow) comment() models.Comment {
	return models.Comment{
		Username:          r.Username,
		CommentText:       r.CommentText,
		ContainsProfanity: r.ContainsProfanity,
		IsOffensive:       r.IsOffensive,
		OffenseType:       r.OffenseType,
		Severity:          r.Severity,
		Explanation:       r.Explanation,
	}
}

// NewRunRepository opens (or creates) the SQLite database at dbPath and
// brings its schema up to date
func NewRunRepository(dbPath string, logger *zap.Logger) (*RunRepository, error) {
	db, err := NewSQLiteDB(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := MigrateDB(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Run repository initialized", zap.String("db_path", dbPath))

	return &RunRepository{
		db:     db,
		logger: logger,
	}, nil
}

// SaveRun stores a run and all its comments in one transaction.
// Comment positions are their indexes in comments.
func (r *RunRepository) SaveRun(run *models.Run, comments []models.Comment) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`
		INSERT INTO runs (
			id, input_file, output_file, provider, model_version,
			total_comments, offensive_comments, failed_comments, started_at, finished_at
		) VALUES (
			:id, :input_file, :output_file, :provider, :model_version,
			:total_comments, :offensive_comments, :failed_comments, :started_at, :finished_at
		)
	`, run)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	for i, c := range comments {
		_, err := tx.NamedExec(`
			INSERT INTO comments (
				run_id, position, username, comment_text, contains_profanity,
				is_offensive, offense_type, severity, explanation
			) VALUES (
				:run_id, :position, :username, :comment_text, :contains_profanity,
				:is_offensive, :offense_type, :severity, :explanation
			)
		`, commentRow{
			RunID:             run.ID,
			Position:          i,
			Username:          c.Username,
			CommentText:       c.CommentText,
			ContainsProfanity: c.ContainsProfanity,
			IsOffensive:       c.IsOffensive,
			OffenseType:       c.OffenseType,
			Severity:          c.Severity,
			Explanation:       c.Explanation,
		})
		if err != nil {
			return fmt.Errorf("failed to save comment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	r.logger.Debug("Run saved", zap.String("run_id", run.ID), zap.Int("comments", len(comments)))
	return nil
}

// GetRuns retrieves all runs, newest first
func (r *RunRepository) GetRuns() ([]*models.Run, error) {
	runs := []*models.Run{}
	if err := r.db.Select(&runs, `SELECT * FROM runs ORDER BY started_at DESC`); err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a run by ID
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	var run models.Run
	err := r.db.Get(&run, `SELECT * FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// GetComments retrieves the comments of a run in input order.
// With offensiveOnly only offensive comments are returned.
func (r *RunRepository) GetComments(runID string, offensiveOnly bool) ([]models.Comment, error) {
	if _, err := r.GetRun(runID); err != nil {
		return nil, err
	}

	query := `SELECT * FROM comments WHERE run_id = ?`
	if offensiveOnly {
		query += ` AND is_offensive = 1`
	}
	query += ` ORDER BY position`

	var rows []commentRow
	if err := r.db.Select(&rows, query, runID); err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.comment())
	}
	return comments, nil
}

// GetStats returns offense type counts across all recorded offensive comments
func (r *RunRepository) GetStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var runs, total int
	if err := r.db.Get(&runs, "SELECT COUNT(*) FROM runs"); err != nil {
		return nil, err
	}
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM comments"); err != nil {
		return nil, err
	}
	stats["runs"] = runs
	stats["comments"] = total

	var counts []struct {
		OffenseType string `db:"offense_type"`
		Count       int    `db:"count"`
	}
	err := r.db.Select(&counts, `
		SELECT offense_type, COUNT(*) AS count
		FROM comments
		WHERE is_offensive = 1
		GROUP BY offense_type
		ORDER BY offense_type
	`)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int, len(counts))
	for _, c := range counts {
		byType[c.OffenseType] = c.Count
	}
	stats["by_offense_type"] = byType

	return stats, nil
}

// Close closes the database connection
func (r *RunRepository) Close() error {
	return r.db.Close()
}
