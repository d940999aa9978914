package preview

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/feather-contrib/internal/apperr"
	"github.com/starford/feather-contrib/internal/docs"
)

// Handler holds preview route handlers.
type Handler struct {
	catalog *docs.Catalog
}

// NewHandler creates a new Handler.
func NewHandler(catalog *docs.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListDocs handles GET /docs.
func (h *Handler) ListDocs(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		slog.Error("list docs failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"docs":  items,
		"total": len(items),
	})
}

// GetDoc handles GET /docs/{name} and returns the raw generated markdown.
func (h *Handler) GetDoc(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := h.catalog.Read(r.Context(), name)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("doc not found"))
			return
		}
		slog.Error("read doc failed", slog.String("name", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Live handles GET /health/live.
func Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
