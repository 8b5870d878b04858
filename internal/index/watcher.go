package index

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/asrvd/nexxel.dev/internal/slug"
	"github.com/asrvd/nexxel.dev/internal/store"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "updated", "removed".
type EventCallback func(kind string, slug string)

// Watch starts an fsnotify watcher on the content root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each successful index mutation.
//
// New directories created at runtime are automatically added to the watch
// list. Rename events trigger a debounced reconciliation pass that removes
// index entries whose sources no longer exist on disk.
func Watch(ctx context.Context, db *DB, st *store.Store, contentRoot string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, contentRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", contentRoot))

	// reconcileTimer is used to debounce rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcileAfterRename(ctx, db, st, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories: add to the watch list and index their contents.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					} else {
						logger.Debug("watcher: watching new dir", slog.String("path", absPath))
					}
					indexNewDir(db, st, contentRoot, absPath, logger, cb)
					continue
				}
			}

			// Only process .md files from here on.
			if !strings.HasSuffix(absPath, ".md") {
				continue
			}

			rel, relErr := filepath.Rel(contentRoot, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			docSlug := slug.FromPath(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				doc, loadErr := st.LoadOne(rel)
				if loadErr != nil {
					// Malformed metadata while someone is mid-edit is routine;
					// report and keep the previous index entry.
					logger.Warn("watcher: parse failed", slog.String("path", rel), slog.String("error", loadErr.Error()))
					continue
				}
				if idxErr := IndexDocument(db, *doc); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("slug", doc.Slug), slog.String("error", idxErr.Error()))
					continue
				}
				logger.Debug("watcher: indexed", slog.String("slug", doc.Slug))
				if cb != nil {
					cb("updated", doc.Slug)
				}

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteDocument(docSlug); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("slug", docSlug), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("slug", docSlug))
				if cb != nil {
					cb("removed", docSlug)
				}

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only; the new path
				// arrives as a separate Create event if it stays inside a
				// watched dir. Delete the old entry now and schedule a
				// reconciliation pass for stragglers.
				if delErr := db.DeleteDocument(docSlug); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("slug", docSlug), slog.String("error", delErr.Error()))
				} else {
					logger.Debug("watcher: rename old deleted", slog.String("slug", docSlug))
					if cb != nil {
						cb("removed", docSlug)
					}
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcileAfterRename reloads the full document set and replays it into
// the index, removing entries whose sources vanished.
func reconcileAfterRename(ctx context.Context, db *DB, st *store.Store, logger *slog.Logger, cb EventCallback) {
	docs, err := st.Load(ctx)
	if err != nil {
		logger.Warn("reconcile: load failed", slog.String("error", err.Error()))
		return
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	present := make(map[string]string, len(docs))
	for _, doc := range docs {
		present[doc.Slug] = doc.Checksum
	}

	for sl := range checksums {
		if _, ok := present[sl]; !ok {
			if delErr := db.DeleteDocument(sl); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("slug", sl))
				if cb != nil {
					cb("removed", sl)
				}
			}
		}
	}

	for _, doc := range docs {
		if checksums[doc.Slug] == doc.Checksum {
			continue
		}
		if idxErr := IndexDocument(db, doc); idxErr == nil {
			logger.Debug("reconcile: indexed", slog.String("slug", doc.Slug))
			if cb != nil {
				cb("updated", doc.Slug)
			}
		}
	}
}

// indexNewDir indexes any .md files found in a newly created directory.
func indexNewDir(db *DB, st *store.Store, contentRoot, dirPath string, logger *slog.Logger, cb EventCallback) {
	_ = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		rel, relErr := filepath.Rel(contentRoot, path)
		if relErr != nil {
			return nil
		}
		doc, loadErr := st.LoadOne(filepath.ToSlash(rel))
		if loadErr != nil {
			return nil
		}
		if idxErr := IndexDocument(db, *doc); idxErr == nil {
			logger.Debug("watcher: indexed from new dir", slog.String("slug", doc.Slug))
			if cb != nil {
				cb("updated", doc.Slug)
			}
		}
		return nil
	})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
