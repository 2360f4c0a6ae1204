// Package siteservice coordinates the content loader, the search index and the
// CV renderer for the HTTP and MCP transports.
package siteservice

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ignatij/folio/internal/content"
	"github.com/ignatij/folio/internal/cv"
	"github.com/ignatij/folio/internal/index"
	"github.com/ignatij/folio/internal/markdown"
	"github.com/ignatij/folio/internal/models"
)

// Publisher is notified after a kind was re-indexed. *sse.Broker satisfies it.
type Publisher interface {
	PublishContentEvent(kind models.Kind)
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets the change publisher.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service is the read side of the site plus reindexing.
type Service struct {
	loader    *content.Loader
	renderer  *markdown.Renderer
	db        index.RecordIndex
	cv        *cv.Renderer
	publisher Publisher
	logger    *slog.Logger

	syncMu sync.Mutex
}

// NewService creates a new site service.
func NewService(loader *content.Loader, renderer *markdown.Renderer, db index.RecordIndex, cvr *cv.Renderer, opts ...Option) *Service {
	s := &Service{
		loader:   loader,
		renderer: renderer,
		db:       db,
		cv:       cvr,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProjects returns all projects in listing order.
func (s *Service) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.loader.LoadProjects(ctx)
}

// GetProject returns one project or apperr.ErrNotFound.
func (s *Service) GetProject(ctx context.Context, slug string) (models.Project, error) {
	return s.loader.LoadProject(ctx, slug)
}

// ListPosts returns all posts, newest first.
func (s *Service) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.loader.LoadPosts(ctx)
}

// GetPost returns one post or apperr.ErrNotFound.
func (s *Service) GetPost(ctx context.Context, slug string) (models.Post, error) {
	return s.loader.LoadPost(ctx, slug)
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// CVInput returns the projects the CV prints, split into dated and side projects.
func (s *Service) CVInput(ctx context.Context) (cv.Input, error) {
	projects, err := s.loader.LoadProjects(ctx)
	if err != nil {
		return cv.Input{}, err
	}
	return cv.NewInput(projects), nil
}

// Profile returns the CV profile.
func (s *Service) Profile() cv.Profile {
	return s.cv.Profile()
}

// RenderCV loads the projects and writes the CV PDF to w. Nothing is written
// when layout fails.
func (s *Service) RenderCV(ctx context.Context, w io.Writer) error {
	projects, err := s.loader.LoadProjects(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := s.cv.Render(&buf, projects); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// StyleCSS writes the syntax highlighting stylesheet.
func (s *Service) StyleCSS(w io.Writer) error {
	return s.renderer.StyleCSS(w)
}

// Reindex brings the search index up to date with the content directories.
// Concurrent calls are serialised.
func (s *Service) Reindex(ctx context.Context) (index.Stats, error) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	return index.Sync(ctx, s.db, s.loader, s.logger)
}

// ContentChanged is the watcher callback: it re-indexes and tells SSE clients
// that kind changed.
func (s *Service) ContentChanged(ctx context.Context, kind models.Kind) {
	if _, err := s.Reindex(ctx); err != nil {
		s.logger.Warn("reindex after change failed",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return
	}
	if s.publisher != nil {
		s.publisher.PublishContentEvent(kind)
	}
}

// Ready reports whether the index is reachable.
func (s *Service) Ready(_ context.Context) error {
	return s.db.Ping()
}
