package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignatij/folio/internal/apperr"
	"github.com/ignatij/folio/internal/siteservice"
)

// maxSearchLimit caps the limit query parameter.
const maxSearchLimit = 100

// Handler holds API route handlers.
type Handler struct {
	svc *siteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *siteservice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error, attrs ...any) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	slog.Error(msg, append(attrs, slog.String("error", err.Error()))...)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// listLimit reads the optional limit query parameter. Zero means no limit.
func listLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'limit' must be a non-negative integer"))
		return 0, false
	}
	return n, true
}

// head returns the first n items, or all of them when n is zero.
func head[T any](items []T, n int) []T {
	if n > 0 && n < len(items) {
		return items[:n]
	}
	return items
}

// ListProjects handles GET /api/projects. Total counts every project even
// when limit trims the list.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	limit, ok := listLimit(w, r)
	if !ok {
		return
	}
	projects, err := h.svc.ListProjects(r.Context())
	if err != nil {
		h.fail(w, "list projects failed", err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectListResponse{
		Projects: toProjectItems(head(projects, limit)),
		Total:    len(projects),
	})
}

// GetProject handles GET /api/projects/{slug}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := h.svc.GetProject(r.Context(), slug)
	if err != nil {
		h.fail(w, "get project failed", err, slog.String("slug", slug))
		return
	}
	w.Header().Set("ETag", strconv.Quote(p.Checksum))
	writeJSON(w, http.StatusOK, p)
}

// ListPosts handles GET /api/blog.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, ok := listLimit(w, r)
	if !ok {
		return
	}
	posts, err := h.svc.ListPosts(r.Context())
	if err != nil {
		h.fail(w, "list posts failed", err)
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{
		Posts: toPostItems(head(posts, limit)),
		Total: len(posts),
	})
}

// GetPost handles GET /api/blog/{slug}.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p, err := h.svc.GetPost(r.Context(), slug)
	if err != nil {
		h.fail(w, "get post failed", err, slog.String("slug", slug))
		return
	}
	w.Header().Set("ETag", strconv.Quote(p.Checksum))
	writeJSON(w, http.StatusOK, p)
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		h.fail(w, "search failed", err, slog.String("query", q))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// CV handles GET /api/cv.pdf.
func (h *Handler) CV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.RenderCV(r.Context(), &buf); err != nil {
		h.fail(w, "render cv failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="cv.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// CVInput handles GET /api/cv/input.
func (h *Handler) CVInput(w http.ResponseWriter, r *http.Request) {
	in, err := h.svc.CVInput(r.Context())
	if err != nil {
		h.fail(w, "cv input failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":       h.svc.Profile(),
		"projects":      toProjectItems(in.Projects),
		"side_projects": toProjectItems(in.SideProjects),
	})
}

// HighlightCSS handles GET /api/highlight.css.
func (h *Handler) HighlightCSS(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.StyleCSS(&buf); err != nil {
		h.fail(w, "highlight css failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Reindex handles POST /api/admin/reindex.
func (h *Handler) Reindex(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Reindex(r.Context())
	if err != nil {
		h.fail(w, "reindex failed", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ready(r.Context()); err != nil {
		slog.Warn("readiness check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
