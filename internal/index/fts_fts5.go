//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ignatij/folio/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS records_fts USING fts5(
			kind UNINDEXED,
			slug UNINDEXED,
			title,
			body,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, kind models.Kind, slug, title, body string, tags []string) error {
	ftsDelete(tx, kind, slug)
	_, err := tx.Exec(`INSERT INTO records_fts (kind, slug, title, body, tags) VALUES (?, ?, ?, ?, ?)`,
		string(kind), slug, title, body, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, kind models.Kind, slug string) {
	_, _ = tx.Exec(`DELETE FROM records_fts WHERE kind = ? AND slug = ?`, string(kind), slug)
}

// Search performs an FTS5 full-text search and returns matches ranked by relevance.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	rows, err := db.conn.Query(`
		SELECT kind,
		       slug,
		       title,
		       snippet(records_fts, 3, '<b>', '</b>', '...', 32)
		FROM records_fts
		WHERE records_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
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
