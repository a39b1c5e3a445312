package profanity

import (
	goaway "github.com/TwiN/go-away"
)

// Filter is a local word-list profanity check. It never calls out to the
// network and is safe to reuse across comments.
type Filter struct {
	detector *goaway.ProfanityDetector
}

// NewFilter creates a filter using the default English word list
func NewFilter() *Filter {
	return &Filter{
		detector: goaway.NewProfanityDetector(),
	}
}

// NewFilterWithWords creates a filter using a custom word list
func NewFilterWithWords(words, falsePositives []string) *Filter {
	return &Filter{
		detector: goaway.NewProfanityDetector().
			WithCustomDictionary(words, falsePositives, nil),
	}
}

// Contains reports whether text contains a known profane word (case-insensitive)
func (f *Filter) Contains(text string) bool {
	if text == "" {
		return false
	}
	return f.detector.IsProfane(text)
}
