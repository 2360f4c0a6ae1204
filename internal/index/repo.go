package index

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ignatij/folio/internal/models"
)

// DefaultSearchLimit applies when a search passes no positive limit.
const DefaultSearchLimit = 20

// Record is one indexed project or post.
type Record struct {
	Kind      models.Kind
	Slug      string
	Title     string
	Excerpt   string
	Tags      []string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult is one search hit.
type SearchResult struct {
	Kind    models.Kind `json:"kind"`
	Slug    string      `json:"slug"`
	Title   string      `json:"title"`
	Snippet string      `json:"snippet"`
}

// UpsertRecord inserts or replaces a record and its FTS entry within a transaction.
func (db *DB) UpsertRecord(r Record, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, _ := json.Marshal(tags)

	_, err = tx.Exec(`
		INSERT INTO records (kind, slug, title, excerpt, tags, body, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, slug) DO UPDATE SET
			title      = excluded.title,
			excerpt    = excluded.excerpt,
			tags       = excluded.tags,
			body       = excluded.body,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, string(r.Kind), r.Slug, r.Title, r.Excerpt, string(tagsJSON), body, r.Checksum, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert record: %w", err)
	}

	if err := ftsUpsert(tx, r.Kind, r.Slug, r.Title, body, r.Tags); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteRecord removes a record and its FTS entry.
func (db *DB) DeleteRecord(kind models.Kind, slug string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, kind, slug)
	if _, err := tx.Exec(`DELETE FROM records WHERE kind = ? AND slug = ?`, string(kind), slug); err != nil {
		return fmt.Errorf("index: delete record: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum for a record, or "" if it is not indexed.
func (db *DB) GetChecksum(kind models.Kind, slug string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM records WHERE kind = ? AND slug = ?`, string(kind), slug).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns slug -> checksum for every indexed record of kind.
func (db *DB) AllChecksums(kind models.Kind) (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT slug, checksum FROM records WHERE kind = ?`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var slug, cs string
		if err := rows.Scan(&slug, &cs); err != nil {
			return nil, err
		}
		out[slug] = cs
	}
	return out, rows.Err()
}

// Count returns the number of indexed records.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
