package index

import "github.com/ignatij/folio/internal/models"

// RecordIndex is the search projection consumed by the transports.
type RecordIndex interface {
	UpsertRecord(r Record, body string) error
	DeleteRecord(kind models.Kind, slug string) error
	GetChecksum(kind models.Kind, slug string) (string, error)
	AllChecksums(kind models.Kind) (map[string]string, error)
	Count() (int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Ping() error
	Close() error
}

// Verify *DB satisfies RecordIndex at compile time.
var _ RecordIndex = (*DB)(nil)
