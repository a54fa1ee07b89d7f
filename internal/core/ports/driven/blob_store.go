package driven

import (
	"context"
	"io"
)

// BlobStore retains original uploaded files (MinIO/S3).
type BlobStore interface {
	// Put stores a file under the given key
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Get retrieves a stored file. The caller must close the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a stored file. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
