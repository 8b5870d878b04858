package index_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/asrvd/nexxel.dev/internal/index"
	"github.com/asrvd/nexxel.dev/internal/models"
	"github.com/asrvd/nexxel.dev/internal/testutil"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func row(slug, title, published string, draft bool) index.DocumentRow {
	return index.DocumentRow{
		Slug:        slug,
		Path:        slug + ".md",
		Title:       title,
		Description: "about " + title,
		PublishedAt: date(published),
		Draft:       draft,
		Checksum:    "sum-" + slug,
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestUpsertGetDocument(t *testing.T) {
	db := testutil.TestDB(t)

	if err := db.UpsertDocument(row("posts/gol", "Game of Life", "2024-03-17", false), "body text"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := db.GetDocument("posts/gol")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("document not found after upsert")
	}
	if got.Title != "Game of Life" {
		t.Errorf("title = %q", got.Title)
	}
	if !got.PublishedAt.Equal(date("2024-03-17")) {
		t.Errorf("published_at = %v", got.PublishedAt)
	}

	// Upsert with same slug replaces.
	if err := db.UpsertDocument(row("posts/gol", "Game of Life v2", "2024-03-18", false), "new body"); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = db.GetDocument("posts/gol")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Game of Life v2" {
		t.Errorf("title after update = %q", got.Title)
	}
}

func TestGetDocument_Missing(t *testing.T) {
	db := testutil.TestDB(t)
	got, err := db.GetDocument("nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing document, got %+v", got)
	}
}

func TestListDocuments_OrderAndDrafts(t *testing.T) {
	db := testutil.TestDB(t)

	upsert := func(r index.DocumentRow) {
		t.Helper()
		if err := db.UpsertDocument(r, "body"); err != nil {
			t.Fatal(err)
		}
	}
	upsert(row("older", "Older", "2023-01-01", false))
	upsert(row("newest", "Newest", "2024-06-01", false))
	// Same date: slug breaks the tie ascending.
	upsert(row("b-same-day", "B", "2024-03-17", false))
	upsert(row("a-same-day", "A", "2024-03-17", false))
	upsert(row("hidden", "Hidden", "2024-12-01", true))

	rows, err := db.ListDocuments(false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"newest", "a-same-day", "b-same-day", "older"}
	if len(rows) != len(want) {
		t.Fatalf("len = %d, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Slug != w {
			t.Errorf("rows[%d] = %q, want %q", i, rows[i].Slug, w)
		}
	}

	all, err := db.ListDocuments(true)
	if err != nil {
		t.Fatalf("list with drafts: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len with drafts = %d, want 5", len(all))
	}
	if all[0].Slug != "hidden" {
		t.Errorf("all[0] = %q, want hidden (latest date first)", all[0].Slug)
	}
}

func TestDeleteDocument(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.UpsertDocument(row("gone", "Gone", "2024-01-01", false), "body"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteDocument("gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := db.GetDocument("gone")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("document still present after delete")
	}
	// Deleting an absent slug is not an error.
	if err := db.DeleteDocument("never-existed"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.UpsertDocument(row("one", "One", "2024-01-01", false), "body"); err != nil {
		t.Fatal(err)
	}
	sums, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("checksums: %v", err)
	}
	if sums["one"] != "sum-one" {
		t.Errorf("sums = %v", sums)
	}
}

func TestSearch(t *testing.T) {
	db := testutil.TestDB(t)
	if err := db.UpsertDocument(row("posts/gol", "Game of Life", "2024-03-17", false), "gliders and still lifes"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertDocument(row("about", "About", "2023-01-01", false), "who I am"); err != nil {
		t.Fatal(err)
	}

	hits, err := db.Search("gliders", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].Slug != "posts/gol" {
		t.Errorf("hit = %q", hits[0].Slug)
	}
	if hits[0].Snippet == "" {
		t.Errorf("empty snippet")
	}

	none, err := db.Search("zebra", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no hits, got %v", none)
	}
}

func TestSync_UpsertsAndPrunes(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.Default()

	docs := []models.Document{
		{Slug: "keep", Path: "keep.md", Title: "Keep", Description: "d", PublishedAt: date("2024-01-01"), Body: "body", Checksum: "v1"},
		{Slug: "drop", Path: "drop.md", Title: "Drop", Description: "d", PublishedAt: date("2024-01-02"), Body: "body", Checksum: "v1"},
	}
	if err := index.Sync(db, docs, logger); err != nil {
		t.Fatalf("sync: %v", err)
	}

	// Second sync: keep changes content, drop vanishes.
	docs = []models.Document{
		{Slug: "keep", Path: "keep.md", Title: "Keep v2", Description: "d", PublishedAt: date("2024-01-01"), Body: "body", Checksum: "v2"},
	}
	if err := index.Sync(db, docs, logger); err != nil {
		t.Fatalf("second sync: %v", err)
	}

	kept, err := db.GetDocument("keep")
	if err != nil {
		t.Fatal(err)
	}
	if kept == nil || kept.Title != "Keep v2" {
		t.Errorf("keep = %+v, want title Keep v2", kept)
	}
	dropped, err := db.GetDocument("drop")
	if err != nil {
		t.Fatal(err)
	}
	if dropped != nil {
		t.Errorf("drop still indexed after sync")
	}
}
