package repository

import (
	"context"

	"legal-document-insight/internal/domain/model"
)

// DocumentRepository persists document records. Save is a full-record upsert;
// the persistence layer's last-write-wins semantics are the accepted
// consistency model for concurrent writers.
type DocumentRepository interface {
	Save(ctx context.Context, tx Tx, doc *model.Document) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Document, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.Document, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
