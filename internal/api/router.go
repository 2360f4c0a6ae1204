package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignatij/folio/internal/siteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// Content routes are public; admin routes require the Bearer token when
// authEnabled is true. sseHandler, if non-nil, is mounted at GET /events.
func NewRouter(svc *siteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	r.Get("/projects", h.ListProjects)
	r.Get("/projects/{slug}", h.GetProject)
	r.Get("/blog", h.ListPosts)
	r.Get("/blog/{slug}", h.GetPost)

	r.Get("/search", h.Search)

	r.Get("/cv.pdf", h.CV)
	r.Get("/cv/input", h.CVInput)
	r.Get("/highlight.css", h.HighlightCSS)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))
		r.Post("/admin/reindex", h.Reindex)
	})

	return r
}

// MountHealth adds the unauthenticated liveness and readiness probes to r.
func MountHealth(r chi.Router, svc *siteservice.Service) {
	h := NewHandler(svc)
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)
}
