// Package apperr defines the error kinds shared across the content pipeline.
package apperr

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// ParseError reports malformed source metadata: a missing or invalid
// frontmatter field, or a slug collision between two source documents.
// It is fatal for the offending document.
type ParseError struct {
	Path  string // source path relative to the content root
	Field string // offending frontmatter field, empty for structural faults
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse %s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("parse %s: field %q: %s", e.Path, e.Field, e.Msg)
}

// RenderError reports malformed body markup: an unterminated fenced code
// block or a heading that nests deeper than a single pass can resolve.
// It is fatal for that document's rendering only.
type RenderError struct {
	Path      string // source path relative to the content root
	Construct string // "fenced code block", "heading"
	Line      int    // 1-based line in the body, 0 when unknown
	Msg       string
}

func (e *RenderError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("render %s: %s at line %d: %s", e.Path, e.Construct, e.Line, e.Msg)
	}
	return fmt.Sprintf("render %s: %s: %s", e.Path, e.Construct, e.Msg)
}
