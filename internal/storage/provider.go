// Package storage defines the content file-system abstraction.
package storage

import "github.com/ignatij/folio/internal/models"

// Provider is the interface for content file operations.
type Provider interface {
	// List returns every .md file directly inside dir (relative to the root),
	// sorted by path. Sub-directories are not descended into.
	List(dir string) ([]models.SourceMetadata, error)
	// Read returns the raw bytes of the file at path (relative to the root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to the root).
	Write(path string, content []byte) error
}
