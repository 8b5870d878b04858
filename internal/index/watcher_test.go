package index

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/asrvd/nexxel.dev/internal/storage"
	"github.com/asrvd/nexxel.dev/internal/store"
)

const testArticle = "---\ntitle: New\ndescription: fresh\ndate: 2024-03-17\n---\n\nbody\n"

// watcherTestEnv sets up a content dir, store, and DB for watcher tests.
func watcherTestEnv(t *testing.T) (string, *store.Store, *DB) {
	t.Helper()
	contentDir := t.TempDir()
	src, err := storage.NewFS(contentDir)
	if err != nil {
		t.Fatal(err)
	}
	dbFile, err := os.CreateTemp("", "nexxel-watcher-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })
	db, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return contentDir, store.New(src), db
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatcher(t *testing.T, db *DB, st *store.Store, dir string) (context.CancelFunc, func() []string) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var events []string
	go Watch(ctx, db, st, dir, logger, func(kind, slug string) {
		mu.Lock()
		events = append(events, kind+":"+slug)
		mu.Unlock()
	})
	time.Sleep(100 * time.Millisecond)

	return cancel, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), events...)
	}
}

func TestWatcher_NewFileIndexed(t *testing.T) {
	dir, st, db := watcherTestEnv(t)
	cancel, events := startWatcher(t, db, st, dir)
	defer cancel()

	_ = os.WriteFile(filepath.Join(dir, "new.md"), []byte(testArticle), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		row, _ := db.GetDocument("new")
		return row != nil
	}, "new file not indexed")

	eventually(t, time.Second, 50*time.Millisecond, func() bool {
		for _, e := range events() {
			if e == "updated:new" {
				return true
			}
		}
		return false
	}, "no updated callback")
}

func TestWatcher_RemovedFileDeleted(t *testing.T) {
	dir, st, db := watcherTestEnv(t)
	path := filepath.Join(dir, "gone.md")
	_ = os.WriteFile(path, []byte(testArticle), 0o644)

	cancel, events := startWatcher(t, db, st, dir)
	defer cancel()

	// Index it, then remove the source.
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		_ = os.WriteFile(path, []byte(testArticle), 0o644)
		row, _ := db.GetDocument("gone")
		return row != nil
	}, "file not indexed before removal")

	_ = os.Remove(path)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		row, _ := db.GetDocument("gone")
		return row == nil
	}, "index entry not removed")

	eventually(t, time.Second, 50*time.Millisecond, func() bool {
		for _, e := range events() {
			if e == "removed:gone" {
				return true
			}
		}
		return false
	}, "no removed callback")
}

func TestWatcher_MalformedEditKeepsPreviousEntry(t *testing.T) {
	dir, st, db := watcherTestEnv(t)
	path := filepath.Join(dir, "edited.md")
	_ = os.WriteFile(path, []byte(testArticle), 0o644)

	cancel, _ := startWatcher(t, db, st, dir)
	defer cancel()

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		_ = os.WriteFile(path, []byte(testArticle), 0o644)
		row, _ := db.GetDocument("edited")
		return row != nil
	}, "file not indexed")

	// A half-written save without valid metadata must not evict the entry.
	_ = os.WriteFile(path, []byte("---\ntitle: broken"), 0o644)
	time.Sleep(300 * time.Millisecond)

	row, err := db.GetDocument("edited")
	if err != nil {
		t.Fatal(err)
	}
	if row == nil {
		t.Error("previous index entry evicted by malformed edit")
	}
}
