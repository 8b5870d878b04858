// Package models defines the domain types of the content pipeline.
package models

import "time"

// Document is one loaded article: parsed metadata plus the raw markdown
// body. Documents are immutable for the lifetime of a single load.
type Document struct {
	Slug        string    `json:"slug"`
	Path        string    `json:"path"` // source path relative to the content root
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft"`
	Body        string    `json:"-"` // raw markdown, frontmatter stripped
	Checksum    string    `json:"checksum"`
}

// Summary is the listing representation of a document; it never carries
// the body.
type Summary struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft,omitempty"`
}

// Summary returns the listing view of d.
func (d Document) Summary() Summary {
	return Summary{
		Slug:        d.Slug,
		Title:       d.Title,
		Description: d.Description,
		PublishedAt: d.PublishedAt,
		Draft:       d.Draft,
	}
}

// Heading is a rendered section heading with its anchor identifier.
// Anchors are unique within one document.
type Heading struct {
	Text   string `json:"text"`
	Level  int    `json:"level"` // 1–6
	Anchor string `json:"anchor"`
}

// CodeBlock is a fenced region of body markup. Content is the literal
// text with all internal whitespace preserved.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content"`
}

// RenderedDocument is the renderer's styled output for one document.
type RenderedDocument struct {
	Slug       string      `json:"slug"`
	HTML       string      `json:"html"`
	Headings   []Heading   `json:"headings"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
}
