package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// OffenseType is the category assigned to a comment by the classifier
type OffenseType string

const (
	HateSpeech   OffenseType = "hate_speech"
	Toxicity     OffenseType = "toxicity"
	Profanity    OffenseType = "profanity"
	Harassment   OffenseType = "harassment"
	None         OffenseType = "none"
	Error        OffenseType = "error"        // classification failed
	Unclassified OffenseType = "unclassified" // not yet sent to the classifier
)

// OffenseTypeNames maps offense types to display names
var OffenseTypeNames = map[OffenseType]string{
	HateSpeech:   "Hate speech",
	Toxicity:     "Toxicity",
	Profanity:    "Profanity",
	Harassment:   "Harassment",
	None:         "None",
	Error:        "Error",
	Unclassified: "Unclassified",
}

// Valid reports whether t is one of the values a classifier may return.
// Error and Unclassified are produced locally and are not valid verdicts.
func (t OffenseType) Valid() bool {
	switch t {
	case HateSpeech, Toxicity, Profanity, Harassment, None:
		return true
	}
	return false
}

const (
	MinSeverity = 1
	MaxSeverity = 5
)

// Verdict is the structured answer of the classification service
type Verdict struct {
	IsOffensive bool        `json:"is_offensive"`
	OffenseType OffenseType `json:"offense_type"`
	Severity    int         `json:"severity"`
	Explanation string      `json:"explanation"`
}

// ErrorVerdict is what a comment gets when classification fails.
// Failures are recorded as not offensive.
func ErrorVerdict() Verdict {
	return Verdict{
		IsOffensive: false,
		OffenseType: Error,
		Severity:    MinSeverity,
		Explanation: "Error in analysis",
	}
}

// Comment is a single user comment with its moderation results
type Comment struct {
	Username          string      `json:"username"`
	CommentText       string      `json:"comment_text"`
	ContainsProfanity bool        `json:"contains_profanity"`
	IsOffensive       bool        `json:"is_offensive"`
	OffenseType       OffenseType `json:"offense_type"`
	Severity          int         `json:"severity"`
	Explanation       string      `json:"explanation"`

	// Extra holds input fields this tool does not know about so they
	// survive the export.
	Extra map[string]json.RawMessage `json:"-"`
}

// NewComment returns a comment with the unclassified sentinel set
func NewComment(username, text string) Comment {
	return Comment{
		Username:    username,
		CommentText: text,
		OffenseType: Unclassified,
		Severity:    MinSeverity,
	}
}

// Apply copies the verdict fields onto the comment
func (c *Comment) Apply(v Verdict) {
	c.IsOffensive = v.IsOffensive
	c.OffenseType = v.OffenseType
	c.Severity = v.Severity
	c.Explanation = v.Explanation
}

var knownFields = map[string]bool{
	"username":           true,
	"comment_text":       true,
	"contains_profanity": true,
	"is_offensive":       true,
	"offense_type":       true,
	"severity":           true,
	"explanation":        true,
}

// UnmarshalJSON decodes the base fields and keeps everything else in Extra.
// Derived fields present in the input are ignored; they are recomputed.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	username, ok := raw["username"]
	if !ok {
		return fmt.Errorf("missing field %q", "username")
	}
	text, ok := raw["comment_text"]
	if !ok {
		return fmt.Errorf("missing field %q", "comment_text")
	}

	*c = NewComment("", "")
	if err := json.Unmarshal(username, &c.Username); err != nil {
		return fmt.Errorf("field username: %w", err)
	}
	if err := json.Unmarshal(text, &c.CommentText); err != nil {
		return fmt.Errorf("field comment_text: %w", err)
	}

	for k, v := range raw {
		if knownFields[k] {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[k] = v
	}
	return nil
}

// MarshalJSON writes the known fields in struct order followed by any
// preserved extras sorted by key
func (c Comment) MarshalJSON() ([]byte, error) {
	type plain Comment
	base, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(c.Extra))
	for k := range c.Extra {
		if !knownFields[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(base[:len(base)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(c.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report summarises a run
type Report struct {
	TotalComments     int                 `json:"total_comments"`
	OffensiveComments int                 `json:"offensive_comments"`
	OffenseTypes      map[OffenseType]int `json:"offense_types"`
	MostOffensive     []Comment           `json:"most_offensive"`
	AllOffensive      []Comment           `json:"all_offensive"`
}

// Run is a recorded pipeline execution
type Run struct {
	ID                string     `json:"id" db:"id"`
	InputFile         string     `json:"input_file" db:"input_file"`
	OutputFile        string     `json:"output_file" db:"output_file"`
	Provider          string     `json:"provider" db:"provider"`
	ModelVersion      string     `json:"model_version,omitempty" db:"model_version"`
	TotalComments     int        `json:"total_comments" db:"total_comments"`
	OffensiveComments int        `json:"offensive_comments" db:"offensive_comments"`
	FailedComments    int        `json:"failed_comments" db:"failed_comments"`
	StartedAt         time.Time  `json:"started_at" db:"started_at"`
	FinishedAt        *time.Time `json:"finished_at,omitempty" db:"finished_at"`
}
