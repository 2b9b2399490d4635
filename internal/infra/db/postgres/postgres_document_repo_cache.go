package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"legal-document-insight/internal/domain/model"
	"legal-document-insight/internal/domain/ports/repository"
	"legal-document-insight/internal/infra/metrics"
	red "legal-document-insight/internal/infra/redis"
)

var _ repository.DocumentRepository = (*documentRepoCacheDecorator)(nil)

type documentRepoCacheDecorator struct {
	inner repository.DocumentRepository
	cache red.RedisClient
	ttl   time.Duration
}

// NewDocumentRepoCacheDecorator caches FindByID lookups in Redis. Only
// terminal records are cached: a completed or failed document never changes
// again, while pending/processing statuses must stay fresh for polling reads.
func NewDocumentRepoCacheDecorator(inner repository.DocumentRepository, cache red.RedisClient) repository.DocumentRepository {
	return &documentRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   1 * time.Hour,
	}
}

func cacheKey(id string) string { return fmt.Sprintf("document:id:%s", id) }

func (d *documentRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, doc *model.Document) error {
	_ = d.cache.Del(ctx, cacheKey(doc.ID))
	return d.inner.Save(ctx, tx, doc)
}

func (d *documentRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Document, error) {
	key := cacheKey(id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var doc model.Document
		if json.Unmarshal([]byte(val), &doc) == nil {
			metrics.IncCacheRequest("document", "hit")
			return &doc, nil
		}
	}

	metrics.IncCacheRequest("document", "miss")
	doc, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if doc.Status.Terminal() {
		if b, err := json.Marshal(doc); err == nil {
			_ = d.cache.Set(ctx, key, b, d.ttl)
		}
	}
	return doc, nil
}

func (d *documentRepoCacheDecorator) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Document, error) {
	return d.inner.List(ctx, tx, offset, limit)
}

func (d *documentRepoCacheDecorator) Count(ctx context.Context, tx repository.Tx) (int, error) {
	return d.inner.Count(ctx, tx)
}
