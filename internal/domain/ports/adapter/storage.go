package adapter

import (
	"context"
	"io"
)

// StorageGateway stores and retrieves raw document bytes behind an opaque
// key. Implementations must derive keys so concurrent uploads with the same
// suggested name never overwrite each other.
type StorageGateway interface {
	Store(ctx context.Context, suggestedName, contentType string, r io.Reader, size int64) (key string, err error)
	Load(ctx context.Context, key string) ([]byte, error)
}
