package prompt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/VikasCh3108/AI-Moderation11/internal/models"
)

// SystemInstruction is sent with every comment
const SystemInstruction = "You are a content moderation assistant. Analyze the comment and respond with a JSON containing: is_offensive (true/false), offense_type (if applicable: hate_speech, toxicity, profanity, harassment, or none), severity (1-5 where 1 is least severe and 5 is most severe), and a brief explanation."

// Temperature used for classification requests
const Temperature = 0.3

// rawVerdict uses pointers so missing fields can be told apart from zero values
type rawVerdict struct {
	IsOffensive *bool   `json:"is_offensive"`
	OffenseType *string `json:"offense_type"`
	Severity    *int    `json:"severity"`
	Explanation *string `json:"explanation"`
}

// CleanJSON strips markdown code fences some models wrap around JSON
func CleanJSON(content string) string {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// ParseVerdict decodes a model response into a verdict.
// Any deviation from the expected shape is an error.
func ParseVerdict(content string) (*models.Verdict, error) {
	clean := CleanJSON(content)
	if clean == "" {
		return nil, errors.New("empty response")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	var raw rawVerdict
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}
	if dec.More() {
		return nil, errors.New("trailing data after verdict")
	}

	if raw.IsOffensive == nil {
		return nil, errors.New("verdict missing is_offensive")
	}

	v := &models.Verdict{
		IsOffensive: *raw.IsOffensive,
		OffenseType: models.None,
		Severity:    models.MinSeverity,
	}

	if raw.OffenseType != nil {
		t := models.OffenseType(strings.ToLower(strings.TrimSpace(*raw.OffenseType)))
		if t == "" {
			t = models.None
		}
		if !t.Valid() {
			return nil, fmt.Errorf("invalid offense_type %q", *raw.OffenseType)
		}
		v.OffenseType = t
	}

	if raw.Severity != nil {
		if *raw.Severity < models.MinSeverity || *raw.Severity > models.MaxSeverity {
			return nil, fmt.Errorf("severity %d out of range", *raw.Severity)
		}
		v.Severity = *raw.Severity
	}

	if raw.Explanation != nil {
		v.Explanation = *raw.Explanation
	}

	return v, nil
}
