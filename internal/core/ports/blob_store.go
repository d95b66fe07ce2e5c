package ports

import (
	"context"
	"io"
)

// BlobStore keeps uploaded files and serves them publicly.
type BlobStore interface {
	// Put stores body under name with public read access and returns its URL.
	Put(ctx context.Context, name string, body io.Reader) (string, error)
}
