package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
	"github.com/VikasCh3108/AI-Moderation11/internal/moderr"
)

// CommentsKey is the top-level key holding the comment list
const CommentsKey = "comments"

// LoadComments reads the input file and returns its comments in order
func LoadComments(path string) ([]models.Comment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &moderr.LoadError{Path: path, Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &moderr.LoadError{Path: path, Err: fmt.Errorf("failed to decode input: %w", err)}
	}

	raw, ok := doc[CommentsKey]
	if !ok {
		return nil, &moderr.LoadError{Path: path, Err: fmt.Errorf("missing %q key", CommentsKey)}
	}

	var comments []models.Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, &moderr.LoadError{Path: path, Err: fmt.Errorf("invalid %q value: %w", CommentsKey, err)}
	}
	if comments == nil {
		if string(raw) == "null" {
			return nil, &moderr.LoadError{Path: path, Err: errors.New("comments is null")}
		}
		comments = []models.Comment{}
	}

	return comments, nil
}
