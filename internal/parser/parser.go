// Package parser splits article sources into validated frontmatter and a
// markdown body.
package parser

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/asrvd/nexxel.dev/internal/apperr"
)

const dateLayout = "2006-01-02"

// frontmatter is the raw metadata block of a source document.
type frontmatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Draft       bool   `yaml:"draft"`
}

// Result holds the output of parsing one source document.
type Result struct {
	Title       string
	Description string
	PublishedAt time.Time
	Draft       bool
	Body        string
}

// Parse validates the frontmatter block of data and returns it together
// with the untouched body. Every structural or field-level fault is a
// *apperr.ParseError naming path and the offending field.
func Parse(path string, data []byte) (*Result, error) {
	block, body, err := splitFrontmatter(path, data)
	if err != nil {
		return nil, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, &apperr.ParseError{Path: path, Msg: "invalid YAML in metadata block: " + err.Error()}
	}

	if strings.TrimSpace(fm.Title) == "" {
		return nil, &apperr.ParseError{Path: path, Field: "title", Msg: "required"}
	}
	if strings.TrimSpace(fm.Description) == "" {
		return nil, &apperr.ParseError{Path: path, Field: "description", Msg: "required"}
	}
	if strings.TrimSpace(fm.Date) == "" {
		return nil, &apperr.ParseError{Path: path, Field: "date", Msg: "required"}
	}
	published, err := time.Parse(dateLayout, strings.TrimSpace(fm.Date))
	if err != nil {
		return nil, &apperr.ParseError{Path: path, Field: "date", Msg: "want YYYY-MM-DD, got " + strings.TrimSpace(fm.Date)}
	}

	return &Result{
		Title:       fm.Title,
		Description: fm.Description,
		PublishedAt: published,
		Draft:       fm.Draft,
		Body:        body,
	}, nil
}

// splitFrontmatter separates the YAML metadata block (between leading ---
// delimiters) from the markdown body. A document without a block, or with
// an unclosed one, is malformed.
func splitFrontmatter(path string, data []byte) ([]byte, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, "", &apperr.ParseError{Path: path, Msg: "missing metadata block"}
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, "", &apperr.ParseError{Path: path, Msg: "unclosed metadata block"}
	}

	block := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")
	return block, body, nil
}
