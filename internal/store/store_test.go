package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/asrvd/nexxel.dev/internal/apperr"
	"github.com/asrvd/nexxel.dev/internal/store"
	"github.com/asrvd/nexxel.dev/internal/testutil"
)

func TestLoad_FullSet(t *testing.T) {
	dir, src := testutil.TestContentDir(t)
	testutil.WriteArticle(t, dir, "posts/Game Of Life.md", testutil.Article("Game of Life", "2024-03-17", "body one"))
	testutil.WriteArticle(t, dir, "about.md", testutil.Article("About", "2023-01-02", "body two"))
	testutil.WriteArticle(t, dir, "notes.txt", "not an article")

	docs, err := store.New(src).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
	// Sorted by slug.
	if docs[0].Slug != "about" || docs[1].Slug != "posts/game-of-life" {
		t.Errorf("slugs = [%s %s]", docs[0].Slug, docs[1].Slug)
	}
	if docs[1].Path != "posts/Game Of Life.md" {
		t.Errorf("path = %q", docs[1].Path)
	}
	if docs[0].Checksum == "" {
		t.Errorf("checksum not populated")
	}
}

func TestLoad_MetadataFaultFailsWholesale(t *testing.T) {
	dir, src := testutil.TestContentDir(t)
	testutil.WriteArticle(t, dir, "good.md", testutil.Article("Good", "2024-01-01", "fine"))
	testutil.WriteArticle(t, dir, "bad.md", "---\ntitle: Bad\ndate: nope\n---\nbody")

	docs, err := store.New(src).Load(context.Background())
	var pe *apperr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *apperr.ParseError", err)
	}
	if docs != nil {
		t.Errorf("expected no partial set, got %d documents", len(docs))
	}
}

func TestLoad_DuplicateSlug(t *testing.T) {
	dir, src := testutil.TestContentDir(t)
	testutil.WriteArticle(t, dir, "posts/Game Of Life.md", testutil.Article("A", "2024-01-01", "one"))
	testutil.WriteArticle(t, dir, "posts/game of life.md", testutil.Article("B", "2024-01-02", "two"))

	docs, err := store.New(src).Load(context.Background())
	var pe *apperr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *apperr.ParseError", err)
	}
	if pe.Field != "slug" {
		t.Errorf("field = %q, want slug", pe.Field)
	}
	if docs != nil {
		t.Errorf("expected no partial set")
	}
}

func TestLoadOne(t *testing.T) {
	dir, src := testutil.TestContentDir(t)
	testutil.WriteArticle(t, dir, "posts/hello.md", testutil.Article("Hello", "2024-06-01", "hi"))

	doc, err := store.New(src).LoadOne("posts/hello.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Slug != "posts/hello" {
		t.Errorf("slug = %q, want posts/hello", doc.Slug)
	}
	if doc.Title != "Hello" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Checksum == "" {
		t.Errorf("checksum not populated")
	}
}
