// Package moderr defines the error kinds a moderation run can fail with.
package moderr

import "fmt"

// LoadError means the input file could not be read or parsed. Fatal.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load comments from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// WriteError means an output file or directory could not be written. Fatal.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// RenderError means a chart could not be produced. Logged, not fatal.
type RenderError struct {
	Chart string
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s chart to %s: %v", e.Chart, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// ClassificationError wraps a failed call to the classification service.
// It never escapes the classifier; the comment gets the error verdict.
type ClassificationError struct {
	Provider string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("%s classification failed: %v", e.Provider, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }
