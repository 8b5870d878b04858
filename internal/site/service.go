// Package site coordinates the content store, metadata index, and
// renderer into one pipeline service.
package site

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/asrvd/nexxel.dev/internal/apperr"
	"github.com/asrvd/nexxel.dev/internal/index"
	"github.com/asrvd/nexxel.dev/internal/models"
	"github.com/asrvd/nexxel.dev/internal/render"
	"github.com/asrvd/nexxel.dev/internal/store"
	"github.com/asrvd/nexxel.dev/internal/style"
)

// DocumentDetail is the full representation of one rendered article.
type DocumentDetail struct {
	Slug        string             `json:"slug"`
	Path        string             `json:"path"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	PublishedAt time.Time          `json:"published_at"`
	Draft       bool               `json:"draft,omitempty"`
	HTML        string             `json:"html"`
	Headings    []models.Heading   `json:"headings"`
	CodeBlocks  []models.CodeBlock `json:"code_blocks"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Service wires store, index, and renderer together. It keeps no
// document state of its own: reads go to the source tree, listings to
// the index, and rendering is a pure per-call transform.
type Service struct {
	store     *store.Store
	db        *index.DB
	renderer  *render.Renderer
	siteTitle string
}

// NewService creates a new pipeline service.
func NewService(st *store.Store, db *index.DB, r *render.Renderer, siteTitle string) *Service {
	return &Service{store: st, db: db, renderer: r, siteTitle: siteTitle}
}

// Reload loads the complete document set and syncs the index against it.
// A ParseError anywhere (including a duplicate slug) fails the reload
// wholesale; the previous index contents stay untouched.
func (s *Service) Reload(ctx context.Context, logger *slog.Logger) (int, error) {
	docs, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := index.Sync(s.db, docs, logger); err != nil {
		return 0, err
	}
	return len(docs), nil
}

// List returns document summaries ordered by publish date descending,
// slug ascending on ties. Drafts appear only when includeDrafts is set.
func (s *Service) List(_ context.Context, includeDrafts bool) ([]models.Summary, error) {
	rows, err := s.db.ListDocuments(includeDrafts)
	if err != nil {
		return nil, err
	}
	out := make([]models.Summary, len(rows))
	for i, r := range rows {
		out[i] = models.Summary{
			Slug:        r.Slug,
			Title:       r.Title,
			Description: r.Description,
			PublishedAt: r.PublishedAt,
			Draft:       r.Draft,
		}
	}
	return out, nil
}

// Get renders a single document by slug.
func (s *Service) Get(_ context.Context, slug string) (*DocumentDetail, error) {
	row, err := s.db.GetDocument(slug)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperr.ErrNotFound
	}
	doc, err := s.store.LoadOne(row.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	rendered, err := s.renderer.Render(doc)
	if err != nil {
		return nil, err
	}
	return &DocumentDetail{
		Slug:        doc.Slug,
		Path:        doc.Path,
		Title:       doc.Title,
		Description: doc.Description,
		PublishedAt: doc.PublishedAt,
		Draft:       doc.Draft,
		HTML:        rendered.HTML,
		Headings:    nonNilSlice(rendered.Headings),
		CodeBlocks:  nonNilSlice(rendered.CodeBlocks),
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Page returns a complete standalone HTML page for a document.
func (s *Service) Page(ctx context.Context, slug string) (string, error) {
	row, err := s.db.GetDocument(slug)
	if err != nil {
		return "", err
	}
	if row == nil {
		return "", apperr.ErrNotFound
	}
	doc, err := s.store.LoadOne(row.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}
	rendered, err := s.renderer.Render(doc)
	if err != nil {
		return "", err
	}
	return render.Page(doc, rendered, render.PageOptions{
		SiteTitle: s.siteTitle,
		CSS:       style.Stylesheet(),
	}), nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
