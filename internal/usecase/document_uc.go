package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/model"
	"legal-document-insight/internal/domain/ports/adapter"
	"legal-document-insight/internal/domain/ports/repository"
	"legal-document-insight/internal/infra/metrics"
)

// Dispatcher schedules a processing run off the request path. Submit returns
// immediately; pipeline failures never surface to the submitter.
type Dispatcher interface {
	Submit(documentID string)
}

// Compile-time check
var _ DocumentUseCase = (*documentUC)(nil)

type DocumentUseCase interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*model.Document, error)
	Get(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, offset, limit int) ([]*model.Document, error)
	Count(ctx context.Context) (int, error)
}

type documentUC struct {
	docs       repository.DocumentRepository
	storage    adapter.StorageGateway
	dispatcher Dispatcher
	log        *zerolog.Logger
}

func NewDocumentUseCase(
	docs repository.DocumentRepository,
	storage adapter.StorageGateway,
	dispatcher Dispatcher,
	logger *zerolog.Logger,
) *documentUC {
	l := logger.With().Str("component", "documents").Logger()
	return &documentUC{docs: docs, storage: storage, dispatcher: dispatcher, log: &l}
}

// Upload stores the raw bytes, creates the record in pending status, and
// hands the identifier to the dispatcher. The caller gets the pending record
// back before processing necessarily starts. A storage failure aborts before
// any record exists.
func (u *documentUC) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (*model.Document, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: empty filename", domain.ErrInvalidArgument)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrInvalidArgument)
	}

	key, err := u.storage.Store(ctx, filename, contentType, r, size)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	doc := model.NewDocument(uuid.NewString(), filename, key, contentType, size)
	if err := u.docs.Save(ctx, nil, doc); err != nil {
		return nil, fmt.Errorf("%w: create document: %v", domain.ErrPersistence, err)
	}

	metrics.IncDocumentUploaded()
	u.log.Info().Str("document_id", doc.ID).Str("filename", filename).Int64("size", size).Msg("document uploaded")

	u.dispatcher.Submit(doc.ID)
	return doc, nil
}

func (u *documentUC) Get(ctx context.Context, id string) (*model.Document, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.docs.FindByID(ctx, nil, id)
}

func (u *documentUC) List(ctx context.Context, offset, limit int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.docs.List(ctx, nil, offset, limit)
}

func (u *documentUC) Count(ctx context.Context) (int, error) {
	return u.docs.Count(ctx, nil)
}
