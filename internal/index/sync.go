package index

import (
	"log/slog"
	"time"

	"github.com/asrvd/nexxel.dev/internal/models"
)

// Sync brings the index in line with a freshly loaded document set:
//   - new and changed documents (by checksum) are upserted
//   - slugs no longer present in the set are deleted
//
// Listing order is recomputed from the table on every query, so a Sync
// after a reload leaves no stale ordering behind.
func Sync(db *DB, docs []models.Document, logger *slog.Logger) error {
	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		present[doc.Slug] = struct{}{}

		if checksums[doc.Slug] == doc.Checksum && doc.Checksum != "" {
			continue
		}
		if err := IndexDocument(db, doc); err != nil {
			logger.Warn("sync: index failed", slog.String("slug", doc.Slug), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("slug", doc.Slug))
		}
	}

	for slug := range checksums {
		if _, ok := present[slug]; !ok {
			if err := db.DeleteDocument(slug); err != nil {
				logger.Warn("sync: delete failed", slog.String("slug", slug), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("slug", slug))
			}
		}
	}

	return nil
}

// IndexDocument upserts a single document into the index.
func IndexDocument(db *DB, doc models.Document) error {
	return db.UpsertDocument(DocumentRow{
		Slug:        doc.Slug,
		Path:        doc.Path,
		Title:       doc.Title,
		Description: doc.Description,
		PublishedAt: doc.PublishedAt,
		Draft:       doc.Draft,
		Checksum:    doc.Checksum,
		UpdatedAt:   time.Now(),
	}, doc.Body)
}
