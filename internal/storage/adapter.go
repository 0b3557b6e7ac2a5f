package storage

import (
	"context"
	"io"
)

// Adapter abstracts where generated artifacts (problem sets, summaries,
// study-set records) are kept. Implementations: local filesystem and S3.
type Adapter interface {
	// Put stores data at the given path, overwriting any previous content
	Put(ctx context.Context, path string, data io.Reader) error

	// Get retrieves data from the given path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes data at the given path; deleting a missing path is not an error
	Delete(ctx context.Context, path string) error

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)

	// List returns slash-separated paths matching the given prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Close cleans up any resources
	Close() error
}
