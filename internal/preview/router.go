// Package preview serves the generated docs over HTTP while watch mode runs,
// so a maintainer can check the output without rebuilding the wallet.
package preview

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a chi router with the preview routes mounted.
// events, if non-nil, is mounted at GET /events.
func NewRouter(h *Handler, events http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", Live)
	r.Get("/docs", h.ListDocs)
	r.Get("/docs/{name}", h.GetDoc)

	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	return r
}
