// Package apperr holds the sentinel errors shared across folio packages.
package apperr

import "errors"

var (
	// ErrNotFound is returned by single-record lookups when no record matches the slug.
	ErrNotFound = errors.New("not found")
	// ErrMalformed marks a document whose front-matter header could not be decoded.
	ErrMalformed = errors.New("malformed document")
)
