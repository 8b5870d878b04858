// Package store implements the content store: it loads every article
// source into an immutable document set.
package store

import (
	"context"
	"sort"

	"github.com/asrvd/nexxel.dev/internal/apperr"
	"github.com/asrvd/nexxel.dev/internal/checksum"
	"github.com/asrvd/nexxel.dev/internal/models"
	"github.com/asrvd/nexxel.dev/internal/parser"
	"github.com/asrvd/nexxel.dev/internal/slug"
	"github.com/asrvd/nexxel.dev/internal/storage"
)

// Store loads documents from a source provider. Each Load produces a
// fresh, complete set; documents never change between loads.
type Store struct {
	src storage.Provider
}

// New creates a Store over the given source provider.
func New(src storage.Provider) *Store {
	return &Store{src: src}
}

// Load walks the source tree, parses every document, and returns the set
// sorted by slug. A metadata fault or a slug collision fails the whole
// load with *apperr.ParseError and no partial set is returned.
func (s *Store) Load(ctx context.Context) ([]models.Document, error) {
	infos, err := s.src.List("")
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(infos))
	bySlug := make(map[string]string, len(infos)) // slug -> source path

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.src.Read(info.Path)
		if err != nil {
			return nil, err
		}
		res, err := parser.Parse(info.Path, data)
		if err != nil {
			return nil, err
		}

		sl := slug.FromPath(info.Path)
		if prev, ok := bySlug[sl]; ok {
			return nil, &apperr.ParseError{
				Path:  info.Path,
				Field: "slug",
				Msg:   "duplicate slug " + sl + " (already used by " + prev + ")",
			}
		}
		bySlug[sl] = info.Path

		docs = append(docs, models.Document{
			Slug:        sl,
			Path:        info.Path,
			Title:       res.Title,
			Description: res.Description,
			PublishedAt: res.PublishedAt,
			Draft:       res.Draft,
			Body:        res.Body,
			Checksum:    info.Checksum,
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Slug < docs[j].Slug })
	return docs, nil
}

// LoadOne reads and parses a single source file.
func (s *Store) LoadOne(path string) (*models.Document, error) {
	data, err := s.src.Read(path)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(path, data)
	if err != nil {
		return nil, err
	}
	doc := models.Document{
		Slug:        slug.FromPath(path),
		Path:        path,
		Title:       res.Title,
		Description: res.Description,
		PublishedAt: res.PublishedAt,
		Draft:       res.Draft,
		Body:        res.Body,
		Checksum:    checksum.Sum(data),
	}
	return &doc, nil
}
