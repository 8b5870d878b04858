// Package build writes the rendered site to an output directory.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/asrvd/nexxel.dev/internal/index"
	"github.com/asrvd/nexxel.dev/internal/models"
	"github.com/asrvd/nexxel.dev/internal/render"
	"github.com/asrvd/nexxel.dev/internal/store"
	"github.com/asrvd/nexxel.dev/internal/style"
)

// Failure records one document that could not be built.
type Failure struct {
	Path string `json:"path"`
	Slug string `json:"slug"`
	Err  string `json:"error"`
}

// Report summarizes a finished build.
type Report struct {
	Written  int       `json:"written"`
	Skipped  int       `json:"skipped"` // drafts
	Failures []Failure `json:"failures,omitempty"`
}

// Options controls a static build.
type Options struct {
	OutDir    string
	SiteTitle string
	// Workers bounds render parallelism; 0 means one per document.
	Workers int
}

// Run loads the full document set, syncs the index, and renders every
// non-draft document to <out>/<slug>/index.html plus the listing page and
// stylesheet. Documents render in parallel; a RenderError fails only its
// own document and lands in the report instead of aborting the batch.
func Run(ctx context.Context, st *store.Store, db *index.DB, logger *slog.Logger, opts Options) (*Report, error) {
	docs, err := st.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := index.Sync(db, docs, logger); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("build: create out dir: %w", err)
	}

	css := style.Stylesheet()
	pageOpts := render.PageOptions{SiteTitle: opts.SiteTitle, CSS: css}

	report := &Report{}
	var mu sync.Mutex
	r := render.New()

	g, gCtx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for _, doc := range docs {
		if doc.Draft {
			report.Skipped++
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// Documents render independently; the renderer keeps no
			// per-call state.
			rendered, err := r.Render(&doc)
			if err != nil {
				logger.Warn("build: render failed", slog.String("path", doc.Path), slog.String("error", err.Error()))
				mu.Lock()
				report.Failures = append(report.Failures, Failure{Path: doc.Path, Slug: doc.Slug, Err: err.Error()})
				mu.Unlock()
				return nil
			}
			page := render.Page(&doc, rendered, pageOpts)
			if err := writePage(opts.OutDir, doc.Slug, page); err != nil {
				return err
			}
			mu.Lock()
			report.Written++
			mu.Unlock()
			logger.Debug("build: wrote", slog.String("slug", doc.Slug))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Listing and stylesheet after the pages, from the synced index.
	rows, err := db.ListDocuments(false)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.Summary, 0, len(rows))
	failed := failedSlugs(report)
	for _, row := range rows {
		if _, ok := failed[row.Slug]; ok {
			continue
		}
		summaries = append(summaries, models.Summary{
			Slug:        row.Slug,
			Title:       row.Title,
			Description: row.Description,
			PublishedAt: row.PublishedAt,
		})
	}

	listing := render.Listing(summaries, pageOpts)
	if err := os.WriteFile(filepath.Join(opts.OutDir, "index.html"), []byte(listing), 0o644); err != nil {
		return nil, fmt.Errorf("build: write listing: %w", err)
	}
	if err := os.WriteFile(filepath.Join(opts.OutDir, "style.css"), []byte(css), 0o644); err != nil {
		return nil, fmt.Errorf("build: write stylesheet: %w", err)
	}

	sort.Slice(report.Failures, func(i, j int) bool { return report.Failures[i].Path < report.Failures[j].Path })
	return report, nil
}

func writePage(outDir, slug, page string) error {
	dir := filepath.Join(outDir, filepath.FromSlash(slug))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("build: mkdir %s: %w", slug, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(page), 0o644); err != nil {
		return fmt.Errorf("build: write %s: %w", slug, err)
	}
	return nil
}

func failedSlugs(r *Report) map[string]struct{} {
	out := make(map[string]struct{}, len(r.Failures))
	for _, f := range r.Failures {
		out[f.Slug] = struct{}{}
	}
	return out
}
