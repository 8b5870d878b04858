package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DocumentRow represents a row in the documents table. It is a body-less
// summary of one article.
type DocumentRow struct {
	Slug        string
	Path        string
	Title       string
	Description string
	PublishedAt time.Time
	Draft       bool
	Checksum    string
	UpdatedAt   time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Slug    string
	Title   string
	Snippet string
}

// UpsertDocument inserts or replaces a document row and its FTS entry
// within a transaction.
func (db *DB) UpsertDocument(doc DocumentRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO documents (slug, path, title, description, published_at, draft, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			path         = excluded.path,
			title        = excluded.title,
			description  = excluded.description,
			published_at = excluded.published_at,
			draft        = excluded.draft,
			checksum     = excluded.checksum,
			body         = excluded.body,
			updated_at   = excluded.updated_at
	`, doc.Slug, doc.Path, doc.Title, doc.Description, doc.PublishedAt.Format(dateLayout),
		boolToInt(doc.Draft), doc.Checksum, body, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert document: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, doc.Slug, doc.Title, body); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDocument removes a document and its FTS entry.
func (db *DB) DeleteDocument(slug string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, slug)
	_, _ = tx.Exec(`DELETE FROM documents WHERE slug = ?`, slug)

	return tx.Commit()
}

// GetDocument returns the summary row for slug, or nil when absent.
func (db *DB) GetDocument(slug string) (*DocumentRow, error) {
	row := db.conn.QueryRow(`
		SELECT slug, path, title, description, published_at, draft, checksum, updated_at
		FROM documents WHERE slug = ?
	`, slug)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns every document ordered by publish date descending,
// ties broken by slug ascending. Drafts are excluded unless includeDrafts
// is set.
func (db *DB) ListDocuments(includeDrafts bool) ([]DocumentRow, error) {
	q := `
		SELECT slug, path, title, description, published_at, draft, checksum, updated_at
		FROM documents
	`
	if !includeDrafts {
		q += ` WHERE draft = 0`
	}
	q += ` ORDER BY published_at DESC, slug ASC`

	rows, err := db.conn.Query(q)
	if err != nil {
		return nil, fmt.Errorf("index: list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentRow
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	return out, rows.Err()
}

// AllChecksums returns every indexed slug with its stored content checksum.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT slug, checksum FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var slug, cs string
		if err := rows.Scan(&slug, &cs); err != nil {
			return nil, err
		}
		out[slug] = cs
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*DocumentRow, error) {
	var doc DocumentRow
	var draft int
	if err := s.Scan(&doc.Slug, &doc.Path, &doc.Title, &doc.Description,
		&doc.PublishedAt, &draft, &doc.Checksum, &doc.UpdatedAt); err != nil {
		return nil, err
	}
	doc.Draft = draft != 0
	return &doc, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
