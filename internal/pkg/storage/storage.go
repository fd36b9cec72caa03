// Package storage keeps fetched calendar pages on disk so extraction
// problems can be replayed offline with `hours parse`.
package storage

import (
	"context"
	"io"
)

// FileStorage stores files under slash-separated relative paths.
type FileStorage interface {
	// Upload stores a file and returns its cleaned relative path
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download returns ErrNotFound for missing files
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error

	Exists(ctx context.Context, path string) (bool, error)
}
