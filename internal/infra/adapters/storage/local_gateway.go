package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"legal-document-insight/internal/domain/ports/adapter"
)

var _ adapter.StorageGateway = (*LocalGateway)(nil)

// LocalGateway stores document bytes as files under a root directory.
type LocalGateway struct {
	root string
}

func NewLocalGateway(root string) (*LocalGateway, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalGateway{root: root}, nil
}

func (g *LocalGateway) Store(ctx context.Context, suggestedName, contentType string, r io.Reader, size int64) (string, error) {
	key := objectKey(suggestedName)
	path := filepath.Join(g.root, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

func (g *LocalGateway) Load(ctx context.Context, key string) ([]byte, error) {
	// Keys never contain separators, but refuse traversal just in case.
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("invalid storage key %q", key)
	}
	b, err := os.ReadFile(filepath.Join(g.root, key))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// objectKey prefixes the sanitized original name with a fresh uuid so
// concurrent uploads of the same filename never collide.
func objectKey(suggestedName string) string {
	name := filepath.Base(strings.TrimSpace(suggestedName))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return uuid.NewString() + "_" + name
}
