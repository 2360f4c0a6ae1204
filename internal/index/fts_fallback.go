//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/ignatij/folio/internal/models"
)

func initFTS(_ *sql.DB) error {
	// Without FTS5 search falls back to LIKE over the records table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ models.Kind, _, _, _ string, _ []string) error {
	return nil
}

func ftsDelete(_ *sql.Tx, _ models.Kind, _ string) {}

// Search performs a case-insensitive LIKE search over title, excerpt, body and tags.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT kind, slug, title, excerpt
		FROM records
		WHERE title LIKE ? OR excerpt LIKE ? OR body LIKE ? OR tags LIKE ?
		ORDER BY kind, slug
		LIMIT ?
	`, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		var kind string
		if err := rows.Scan(&kind, &r.Slug, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		r.Kind = models.Kind(kind)
		out = append(out, r)
	}
	return out, rows.Err()
}
