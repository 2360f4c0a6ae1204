// Package content discovers, parses and orders the site's markdown content.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	goslug "github.com/goliatone/go-slug"
	"golang.org/x/sync/errgroup"

	"github.com/ignatij/folio/internal/apperr"
	"github.com/ignatij/folio/internal/checksum"
	"github.com/ignatij/folio/internal/markdown"
	"github.com/ignatij/folio/internal/models"
	"github.com/ignatij/folio/internal/parser"
	"github.com/ignatij/folio/internal/storage"
)

// Default content directories, relative to the content root.
const (
	DefaultProjectsDir = "projects"
	DefaultPostsDir    = "blog"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for skipped documents and discovery failures.
func WithLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// WithClock overrides the clock used to default missing post dates.
func WithClock(now func() time.Time) LoaderOption {
	return func(ld *Loader) { ld.now = now }
}

// WithConcurrency bounds how many documents are read and rendered at once.
func WithConcurrency(n int) LoaderOption {
	return func(ld *Loader) {
		if n > 0 {
			ld.concurrency = n
		}
	}
}

// WithProjectsDir sets the projects directory relative to the content root.
func WithProjectsDir(dir string) LoaderOption {
	return func(ld *Loader) { ld.projectsDir = dir }
}

// WithPostsDir sets the blog directory relative to the content root.
func WithPostsDir(dir string) LoaderOption {
	return func(ld *Loader) { ld.postsDir = dir }
}

// Loader builds ordered record collections from a storage.Provider.
// Every call reads the files again; nothing is cached between calls.
type Loader struct {
	store       storage.Provider
	renderer    *markdown.Renderer
	logger      *slog.Logger
	now         func() time.Time
	concurrency int
	projectsDir string
	postsDir    string
}

// NewLoader creates a Loader over store, rendering bodies with renderer.
func NewLoader(store storage.Provider, renderer *markdown.Renderer, opts ...LoaderOption) *Loader {
	l := &Loader{
		store:       store,
		renderer:    renderer,
		logger:      slog.Default(),
		now:         time.Now,
		concurrency: 8,
		projectsDir: DefaultProjectsDir,
		postsDir:    DefaultPostsDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dirs returns the projects and posts directories, relative to the content root.
func (l *Loader) Dirs() (projects, posts string) {
	return l.projectsDir, l.postsDir
}

// document is one successfully parsed and rendered source file.
type document struct {
	path     string
	slug     string
	meta     map[string]any
	source   string
	html     string
	checksum string
}

// LoadProjects returns every project, ordered by the project policy.
func (l *Loader) LoadProjects(ctx context.Context) ([]models.Project, error) {
	docs, err := l.loadDocuments(ctx, l.projectsDir)
	if err != nil {
		return nil, err
	}
	projects := make([]models.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, newProject(d))
	}
	SortProjects(projects)
	return projects, nil
}

// LoadProject returns the project with the given slug, or apperr.ErrNotFound.
func (l *Loader) LoadProject(ctx context.Context, slug string) (models.Project, error) {
	projects, err := l.LoadProjects(ctx)
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Project{}, fmt.Errorf("project %q: %w", slug, apperr.ErrNotFound)
}

// LoadPosts returns every blog post, newest first.
func (l *Loader) LoadPosts(ctx context.Context) ([]models.Post, error) {
	docs, err := l.loadDocuments(ctx, l.postsDir)
	if err != nil {
		return nil, err
	}
	now := l.now()
	posts := make([]models.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, newPost(d, now))
	}
	SortPosts(posts)
	return posts, nil
}

// LoadPost returns the post with the given slug, or apperr.ErrNotFound.
func (l *Loader) LoadPost(ctx context.Context, slug string) (models.Post, error) {
	posts, err := l.LoadPosts(ctx)
	if err != nil {
		return models.Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Post{}, fmt.Errorf("post %q: %w", slug, apperr.ErrNotFound)
}

// loadDocuments lists dir and parses every entry concurrently. A missing or
// unreadable directory yields no documents; a bad document is logged and
// skipped. Only context cancellation is returned as an error.
func (l *Loader) loadDocuments(ctx context.Context, dir string) ([]document, error) {
	metas, err := l.store.List(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("content: directory missing", slog.String("dir", dir))
		} else {
			l.logger.Warn("content: discovery failed", slog.String("dir", dir), slog.String("error", err.Error()))
		}
		return []document{}, nil
	}

	slugs := assignSlugs(metas, l.logger)

	results := make([]*document, len(metas))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, m := range metas {
		slug, ok := slugs[m.Path]
		if !ok {
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := l.loadDocument(m.Path, slug)
			if err != nil {
				l.logger.Warn("content: skipping document",
					slog.String("path", m.Path),
					slog.String("error", err.Error()))
				return nil
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("content: load %s: %w", dir, err)
	}

	docs := make([]document, 0, len(results))
	for _, d := range results {
		if d != nil {
			docs = append(docs, *d)
		}
	}
	return docs, nil
}

func (l *Loader) loadDocument(p, slug string) (*document, error) {
	data, err := l.store.Read(p)
	if err != nil {
		return nil, err
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, err
	}
	html, err := l.renderer.Render([]byte(res.Body))
	if err != nil {
		return nil, err
	}
	return &document{
		path:     p,
		slug:     slug,
		meta:     res.Meta,
		source:   res.Body,
		html:     html,
		checksum: checksum.Document(p, data),
	}, nil
}

// assignSlugs maps each source path to its slug. Paths arrive sorted, so when
// two files normalise to the same slug the first one keeps it.
func assignSlugs(metas []models.SourceMetadata, logger *slog.Logger) map[string]string {
	out := make(map[string]string, len(metas))
	taken := make(map[string]string, len(metas))
	for _, m := range metas {
		slug, err := SlugFromPath(m.Path)
		if err != nil {
			logger.Warn("content: skipping document", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if prev, dup := taken[slug]; dup {
			logger.Warn("content: duplicate slug",
				slog.String("slug", slug),
				slog.String("path", m.Path),
				slog.String("kept", prev))
			continue
		}
		taken[slug] = m.Path
		out[m.Path] = slug
	}
	return out
}

// SlugFromPath derives a URL-path-safe slug from a file name by dropping the
// markdown extension. Stems that are not valid slugs are normalised.
func SlugFromPath(p string) (string, error) {
	stem := strings.TrimSuffix(path.Base(p), storage.MarkdownExt)
	if goslug.IsValid(stem) {
		return stem, nil
	}
	normalized, err := goslug.Normalize(stem)
	if err != nil {
		return "", fmt.Errorf("content: slug for %s: %w", p, err)
	}
	if normalized == "" {
		return "", fmt.Errorf("content: empty slug for %s", p)
	}
	return normalized, nil
}

func newProject(d document) models.Project {
	period := models.Period{
		Start: models.ParseDate(parser.String(d.meta, "start_date")),
		End:   models.ParseDate(parser.String(d.meta, "end_date")),
	}
	return models.Project{
		Slug:         d.slug,
		Title:        parser.String(d.meta, "title"),
		Excerpt:      Excerpt(parser.String(d.meta, "excerpt"), d.source),
		Description:  parser.String(d.meta, "description"),
		Body:         d.html,
		Technologies: parser.Strings(d.meta, "technologies"),
		GitHub:       parser.String(d.meta, "github"),
		Live:         parser.String(d.meta, "live"),
		MyRole:       parser.String(d.meta, "my_role"),
		ShowInCV:     parser.Bool(d.meta, "show_in_cv", true),
		Period:       period,
		Tier:         period.Kind().String(),
		Meta:         d.meta,
		Checksum:     d.checksum,
		Source:       d.source,
	}
}

func newPost(d document, now time.Time) models.Post {
	date := models.ParseDate(parser.String(d.meta, "date"))
	if date.IsZero() {
		date = models.DateFromTime(now)
	}
	return models.Post{
		Slug:      d.slug,
		Title:     parser.String(d.meta, "title"),
		Excerpt:   Excerpt(parser.String(d.meta, "excerpt"), d.source),
		Body:      d.html,
		Tags:      parser.Strings(d.meta, "tags"),
		Thumbnail: parser.String(d.meta, "thumbnail"),
		Date:      date,
		ReadTime:  EstimateReadTime(d.source),
		Meta:      d.meta,
		Checksum:  d.checksum,
		Source:    d.source,
	}
}
