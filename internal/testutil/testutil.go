// Package testutil provides shared test helpers for setting up content trees and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/asrvd/nexxel.dev/internal/index"
	"github.com/asrvd/nexxel.dev/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "nexxel-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContentDir creates a temporary content directory with a storage.Provider.
func TestContentDir(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	src, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, src
}

// WriteArticle writes an article source file under dir, creating parent
// directories as needed.
func WriteArticle(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Article assembles a minimal valid article source with the given body.
func Article(title, date, body string) string {
	return "---\ntitle: " + title + "\ndescription: about " + title + "\ndate: " + date + "\n---\n\n" + body
}

// DraftArticle assembles a draft article source with the given body.
func DraftArticle(title, date, body string) string {
	return "---\ntitle: " + title + "\ndescription: about " + title + "\ndate: " + date + "\ndraft: true\n---\n\n" + body
}
