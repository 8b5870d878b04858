package api

import (
	"github.com/asrvd/nexxel.dev/internal/models"
	"github.com/asrvd/nexxel.dev/internal/site"
)

// DocumentDetail is the full article response type (aliased from the
// domain layer).
type DocumentDetail = site.DocumentDetail

// Summary is a body-less listing item (aliased from the domain layer).
type Summary = models.Summary

// ListResponse wraps a summary listing.
type ListResponse struct {
	Documents []Summary `json:"documents"`
	Total     int       `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
