// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ignatij/folio/internal/api"
	"github.com/ignatij/folio/internal/content"
	"github.com/ignatij/folio/internal/cv"
	"github.com/ignatij/folio/internal/index"
	"github.com/ignatij/folio/internal/markdown"
	"github.com/ignatij/folio/internal/mcpserver"
	"github.com/ignatij/folio/internal/models"
	"github.com/ignatij/folio/internal/siteservice"
	"github.com/ignatij/folio/internal/sse"
	"github.com/ignatij/folio/internal/storage"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logOutput == nil {
		app.logOutput = os.Stdout
	}
	return app, nil
}

// newLogger initialises the structured JSON logger and makes it the default.
func (a *application) newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// newLoader opens the content root (creating it when missing) and builds the
// markdown renderer and content loader over it.
func (a *application) newLoader(logger *slog.Logger) (*storage.FS, *markdown.Renderer, *content.Loader, error) {
	cfg := a.config.Content
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, nil, nil, fmt.Errorf("create content dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Root)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init storage: %w", err)
	}
	renderer := markdown.New(a.config.Render.Options)
	loader := content.NewLoader(store, renderer,
		content.WithLogger(logger),
		content.WithConcurrency(cfg.Concurrency),
		content.WithProjectsDir(cfg.ProjectsDir),
		content.WithPostsDir(cfg.PostsDir),
	)
	return store, renderer, loader, nil
}

// newService wires the loader, index and CV renderer into a site service.
// The returned index must be closed by the caller.
func (a *application) newService(logger *slog.Logger, opts ...siteservice.Option) (*siteservice.Service, *storage.FS, *index.DB, error) {
	store, renderer, loader, err := a.newLoader(logger)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := index.Open(a.config.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init index: %w", err)
	}
	opts = append([]siteservice.Option{siteservice.WithLogger(logger)}, opts...)
	svc := siteservice.NewService(loader, renderer, db, cv.NewRenderer(a.config.CV.Profile), opts...)
	return svc, store, db, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	logger.Info("Configuration loaded",
		slog.String("version", app.version),
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_root", cfg.Content.Root),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svc, store, db, err := app.newService(logger, siteservice.WithPublisher(broker))
	if err != nil {
		return err
	}
	defer db.Close()

	// Run initial sync.
	if stats, err := svc.Reindex(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	} else {
		logger.Info("initial sync done", slog.Int("indexed", stats.Indexed), slog.Int("removed", stats.Removed))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	api.MountHealth(r, svc)

	// Mount API routes under /api.
	r.Mount("/api", api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker))

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start content watcher: reindex and notify SSE clients on change.
	g.Go(func() error {
		dirs := map[string]models.Kind{
			cfg.Content.ProjectsDir: models.KindProject,
			cfg.Content.PostsDir:    models.KindPost,
		}
		if err := index.Watch(gCtx, store.Root(), dirs, logger, func(kind models.Kind) {
			svc.ContentChanged(gCtx, kind)
		}); err != nil {
			logger.Error("watcher failed", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// SSE streams only end when their clients go away or the broker closes.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// GenerateCV renders the CV from the current projects and writes it
// atomically to the configured output path. It returns the written path, or
// "" when there was no project to print.
func GenerateCV(ctx context.Context, opts ...Option) (string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return "", err
	}
	cfg := app.config
	logger := app.newLogger()

	_, _, loader, err := app.newLoader(logger)
	if err != nil {
		return "", err
	}
	projects, err := loader.LoadProjects(ctx)
	if err != nil {
		return "", fmt.Errorf("load projects: %w", err)
	}
	if cv.NewInput(projects).Empty() {
		logger.Warn("No projects found, CV not generated", slog.String("content_root", cfg.Content.Root))
		return "", nil
	}

	var buf bytes.Buffer
	if err := cv.NewRenderer(cfg.CV.Profile).Render(&buf, projects); err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfg.CV.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(cfg.CV.OutputDir)
	if err != nil {
		return "", fmt.Errorf("init output storage: %w", err)
	}
	if err := out.Write(cfg.CV.FileName, buf.Bytes()); err != nil {
		return "", err
	}

	path := cfg.CV.OutputPath()
	logger.Info("CV generated", slog.String("path", path), slog.Int("bytes", buf.Len()))
	return path, nil
}

// ServeMCP serves the MCP tools over in/out until ctx is cancelled or in is
// closed. Logs go to stderr unless WithLogOutput says otherwise, since stdout
// carries the protocol.
func ServeMCP(ctx context.Context, in io.Reader, out io.Writer, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	logger := app.newLogger()

	svc, _, db, err := app.newService(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := svc.Reindex(ctx); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	logger.Info("MCP server starting", slog.String("version", app.version))
	return mcpserver.New(svc, app.version).Listen(ctx, in, out)
}
