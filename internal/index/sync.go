package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ignatij/folio/internal/models"
)

// Source supplies freshly loaded records. *content.Loader satisfies it.
type Source interface {
	LoadProjects(ctx context.Context) ([]models.Project, error)
	LoadPosts(ctx context.Context) ([]models.Post, error)
}

// Stats summarises one sync pass.
type Stats struct {
	Indexed   int `json:"indexed"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
}

type entry struct {
	rec  Record
	body string
}

// Sync loads every record from src and brings the index up to date:
//   - new/changed records (by checksum) are upserted
//   - records no longer loaded are deleted
func Sync(ctx context.Context, db RecordIndex, src Source, logger *slog.Logger) (Stats, error) {
	var stats Stats

	projects, err := src.LoadProjects(ctx)
	if err != nil {
		return stats, fmt.Errorf("index: sync projects: %w", err)
	}
	if err := syncKind(db, models.KindProject, projectEntries(projects), &stats, logger); err != nil {
		return stats, err
	}

	posts, err := src.LoadPosts(ctx)
	if err != nil {
		return stats, fmt.Errorf("index: sync posts: %w", err)
	}
	if err := syncKind(db, models.KindPost, postEntries(posts), &stats, logger); err != nil {
		return stats, err
	}

	logger.Debug("sync: done",
		slog.Int("indexed", stats.Indexed),
		slog.Int("unchanged", stats.Unchanged),
		slog.Int("removed", stats.Removed))
	return stats, nil
}

func syncKind(db RecordIndex, kind models.Kind, entries []entry, stats *Stats, logger *slog.Logger) error {
	checksums, err := db.AllChecksums(kind)
	if err != nil {
		return err
	}

	loaded := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		loaded[e.rec.Slug] = struct{}{}
		if cs, ok := checksums[e.rec.Slug]; ok && cs == e.rec.Checksum {
			stats.Unchanged++
			continue
		}
		if err := db.UpsertRecord(e.rec, e.body); err != nil {
			logger.Warn("sync: index failed",
				slog.String("kind", string(kind)),
				slog.String("slug", e.rec.Slug),
				slog.String("error", err.Error()))
			continue
		}
		stats.Indexed++
		logger.Debug("sync: indexed", slog.String("kind", string(kind)), slog.String("slug", e.rec.Slug))
	}

	for slug := range checksums {
		if _, ok := loaded[slug]; ok {
			continue
		}
		if err := db.DeleteRecord(kind, slug); err != nil {
			logger.Warn("sync: delete failed",
				slog.String("kind", string(kind)),
				slog.String("slug", slug),
				slog.String("error", err.Error()))
			continue
		}
		stats.Removed++
		logger.Debug("sync: removed stale", slog.String("kind", string(kind)), slog.String("slug", slug))
	}
	return nil
}

func projectEntries(projects []models.Project) []entry {
	now := time.Now().UTC()
	out := make([]entry, 0, len(projects))
	for _, p := range projects {
		out = append(out, entry{
			rec: Record{
				Kind:      models.KindProject,
				Slug:      p.Slug,
				Title:     p.DisplayTitle(),
				Excerpt:   p.Excerpt,
				Tags:      p.Technologies,
				Checksum:  p.Checksum,
				UpdatedAt: now,
			},
			body: p.Source,
		})
	}
	return out
}

func postEntries(posts []models.Post) []entry {
	now := time.Now().UTC()
	out := make([]entry, 0, len(posts))
	for _, p := range posts {
		title := p.Title
		if title == "" {
			title = p.Slug
		}
		out = append(out, entry{
			rec: Record{
				Kind:      models.KindPost,
				Slug:      p.Slug,
				Title:     title,
				Excerpt:   p.Excerpt,
				Tags:      p.Tags,
				Checksum:  p.Checksum,
				UpdatedAt: now,
			},
			body: p.Source,
		})
	}
	return out
}
