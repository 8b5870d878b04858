package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/asrvd/nexxel.dev/internal/apperr"
	"github.com/asrvd/nexxel.dev/internal/site"
	"github.com/asrvd/nexxel.dev/internal/style"
)

// Handler holds API route handlers.
type Handler struct {
	svc *site.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *site.Service) *Handler {
	return &Handler{svc: svc}
}

// docSlug extracts the document slug from the URL (everything after
// /documents/). Supports encoded slashes for nested slugs
// (e.g. posts%2Fgame-of-life).
func docSlug(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	raw = strings.TrimSuffix(raw, "/page")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListDocuments handles GET /documents. Drafts are excluded unless
// ?drafts=true is passed by an authenticated caller.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	includeDrafts := r.URL.Query().Get("drafts") == "true"
	if includeDrafts && !isAuthed(r.Context()) {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	items, err := h.svc.List(r.Context(), includeDrafts)
	if err != nil {
		slog.Error("list documents failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Documents: items, Total: len(items)})
}

// GetDocument handles GET /documents/*.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	slug := docSlug(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	doc, err := h.svc.Get(r.Context(), slug)
	if err != nil {
		h.writeDocError(w, slug, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// GetDocumentPage handles GET /documents/*/page, returning the complete
// styled HTML page.
func (h *Handler) GetDocumentPage(w http.ResponseWriter, r *http.Request) {
	slug := docSlug(r)
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	page, err := h.svc.Page(r.Context(), slug)
	if err != nil {
		h.writeDocError(w, slug, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// Search handles GET /search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	out := make([]SearchResult, len(results))
	for i, res := range results {
		out[i] = SearchResult{Slug: res.Slug, Title: res.Title, Snippet: res.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: out})
}

// Stylesheet handles GET /style.css.
func (h *Handler) Stylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(style.Stylesheet()))
}

// writeDocError maps pipeline errors onto HTTP responses, naming the
// offending construct for render faults.
func (h *Handler) writeDocError(w http.ResponseWriter, slug string, err error) {
	var renderErr *apperr.RenderError
	var parseErr *apperr.ParseError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.As(err, &renderErr), errors.As(err, &parseErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
	default:
		slog.Error("get document failed", slog.String("slug", slug), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
