package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asrvd/nexxel.dev/internal/storage"
	"github.com/asrvd/nexxel.dev/internal/store"
	"github.com/asrvd/nexxel.dev/internal/testutil"
)

func runBuild(t *testing.T, dir string, opts Options) *Report {
	t.Helper()
	src, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	db := testutil.TestDB(t)
	report, err := Run(context.Background(), store.New(src), db, slog.Default(), opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return report
}

func TestRun_WritesPagesListingAndStylesheet(t *testing.T) {
	content := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	testutil.WriteArticle(t, content, "posts/gol.md", testutil.Article("Game of Life", "2024-03-17", "## Intro\n\nbody\n"))
	testutil.WriteArticle(t, content, "about.md", testutil.Article("About", "2023-01-02", "hello"))
	testutil.WriteArticle(t, content, "draft.md", testutil.DraftArticle("Draft", "2024-06-01", "wip"))

	report := runBuild(t, content, Options{OutDir: out, SiteTitle: "nexxel"})

	if report.Written != 2 || report.Skipped != 1 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}

	page, err := os.ReadFile(filepath.Join(out, "posts", "gol", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), `<h2 id="intro">`) {
		t.Errorf("page missing rendered body")
	}

	listing, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(listing), `href="/posts/gol/"`) {
		t.Errorf("listing missing article link:\n%s", listing)
	}
	if strings.Contains(string(listing), "Draft") {
		t.Errorf("draft leaked into listing")
	}

	if _, err := os.Stat(filepath.Join(out, "style.css")); err != nil {
		t.Errorf("stylesheet not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "draft", "index.html")); !os.IsNotExist(err) {
		t.Errorf("draft page written")
	}
}

func TestRun_RenderFailureDoesNotAbortBatch(t *testing.T) {
	content := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	testutil.WriteArticle(t, content, "good.md", testutil.Article("Good", "2024-01-01", "fine"))
	testutil.WriteArticle(t, content, "broken.md", testutil.Article("Broken", "2024-01-02", "```go\nno close\n"))

	report := runBuild(t, content, Options{OutDir: out, SiteTitle: "nexxel", Workers: 2})

	if report.Written != 1 {
		t.Errorf("written = %d, want 1", report.Written)
	}
	if len(report.Failures) != 1 || report.Failures[0].Slug != "broken" {
		t.Fatalf("failures = %+v", report.Failures)
	}
	if !strings.Contains(report.Failures[0].Err, "fenced code block") {
		t.Errorf("failure does not name construct: %q", report.Failures[0].Err)
	}

	// The failed document is absent from both output tree and listing.
	if _, err := os.Stat(filepath.Join(out, "broken", "index.html")); !os.IsNotExist(err) {
		t.Errorf("broken page written")
	}
	listing, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(listing), "broken") {
		t.Errorf("failed document leaked into listing")
	}
}

func TestRun_MetadataFaultAbortsBuild(t *testing.T) {
	content := t.TempDir()
	testutil.WriteArticle(t, content, "bad.md", "---\ntitle: only\n---\nbody")

	src, err := storage.NewFS(content)
	if err != nil {
		t.Fatal(err)
	}
	db := testutil.TestDB(t)
	_, err = Run(context.Background(), store.New(src), db, slog.Default(), Options{OutDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected build to fail on metadata fault")
	}
}
