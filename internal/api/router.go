package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/asrvd/nexxel.dev/internal/site"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether draft visibility requires a Bearer token.
// sseHandler, if non-nil, is mounted at GET /events.
// assetsDir, if non-empty, is served under /assets/.
func NewRouter(svc *site.Service, authEnabled bool, token string, sseHandler http.Handler, assetsDir string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Listings and documents. Nested slugs may contain slashes, so a
	// wildcard route dispatches on the /page suffix.
	r.Get("/documents", h.ListDocuments)
	r.Get("/documents/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(chi.URLParam(req, "*"), "/page") {
			h.GetDocumentPage(w, req)
			return
		}
		h.GetDocument(w, req)
	})

	// Search.
	r.Get("/search", h.Search)

	// Style layer.
	r.Get("/style.css", h.Stylesheet)

	// Static assets referenced by documents (images, fonts).
	if assetsDir != "" {
		fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsDir)))
		r.Get("/assets/*", fs.ServeHTTP)
	}

	// SSE live reload endpoint.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
