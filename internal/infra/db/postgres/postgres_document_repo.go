package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/model"
	"legal-document-insight/internal/domain/ports/repository"
)

var _ repository.DocumentRepository = (*documentRepo)(nil)

type documentRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentRepo(pool *pgxpool.Pool) *documentRepo {
	return &documentRepo{pool: pool}
}

const documentColumns = `id, filename, storage_key, content_type, size_bytes, status,
       extraction_result, summary, last_error, created_at, updated_at`

func (r *documentRepo) Save(ctx context.Context, tx repository.Tx, doc *model.Document) error {
	doc.UpdatedAt = time.Now()

	const q = `
INSERT INTO documents (id, filename, storage_key, content_type, size_bytes, status,
                       extraction_result, summary, last_error, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
  status = EXCLUDED.status,
  extraction_result = EXCLUDED.extraction_result,
  summary = EXCLUDED.summary,
  last_error = EXCLUDED.last_error,
  updated_at = EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q,
		doc.ID, doc.Filename, doc.StorageKey, doc.ContentType, doc.SizeBytes, string(doc.Status),
		doc.ExtractionResult, doc.Summary, doc.LastError, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (r *documentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanDocument(row)
}

func (r *documentRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at DESC OFFSET $1 LIMIT $2;`
	rows, err := pickRows(ctx, r.pool, tx, q, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (r *documentRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM documents;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func scanDocument(row pgx.Row) (*model.Document, error) {
	var d model.Document
	var statusStr string
	err := row.Scan(
		&d.ID, &d.Filename, &d.StorageKey, &d.ContentType, &d.SizeBytes, &statusStr,
		&d.ExtractionResult, &d.Summary, &d.LastError, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	d.Status = model.ProcessingStatus(statusStr)
	return &d, nil
}
