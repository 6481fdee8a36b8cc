// Package archive stores copies of rendered dashboard documents, keyed
// by render session, on the local filesystem or an S3-compatible bucket.
package archive

import "context"

// Store is the archive backend for rendered documents
type Store interface {
	// Put stores a rendered document under the given key
	Put(ctx context.Context, key string, html []byte) error

	// Get retrieves a previously archived document
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all archived keys under the prefix
	List(ctx context.Context, prefix string) ([]string, error)
}
