package storage

import (
	"context"
	"io"
)

// Store defines the interface for the build output backend.
type Store interface {
	// Save writes the content of reader to path, replacing any existing file.
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)
	// Open returns a reader for the file at path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes the file at path.
	Delete(ctx context.Context, path string) error
	// List returns the names of the regular files directly inside dir.
	List(ctx context.Context, dir string) ([]string, error)
}
