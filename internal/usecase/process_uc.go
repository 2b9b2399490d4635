package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/model"
	"legal-document-insight/internal/domain/ports/adapter"
	"legal-document-insight/internal/domain/ports/repository"
	"legal-document-insight/internal/infra/metrics"
)

// Compile-time check
var _ ProcessingUseCase = (*processingUC)(nil)

// ProcessingUseCase drives the full analysis pipeline for one document and
// leaves its record in a terminal, consistent status.
type ProcessingUseCase interface {
	// Process runs extract -> summarize -> extract-clauses -> persist for the
	// given document. A missing record returns domain.ErrNotFound with no
	// writes; any pipeline failure transitions the record to failed and is
	// also returned for observability.
	Process(ctx context.Context, documentID string) error
}

type processingUC struct {
	docs      repository.DocumentRepository
	storage   adapter.StorageGateway
	extractor adapter.TextExtractor
	insight   adapter.InsightAdapter
	log       *zerolog.Logger
}

func NewProcessingUseCase(
	docs repository.DocumentRepository,
	storage adapter.StorageGateway,
	extractor adapter.TextExtractor,
	insight adapter.InsightAdapter,
	logger *zerolog.Logger,
) *processingUC {
	l := logger.With().Str("component", "processing").Logger()
	return &processingUC{docs: docs, storage: storage, extractor: extractor, insight: insight, log: &l}
}

func (p *processingUC) Process(ctx context.Context, documentID string) error {
	log := p.log.With().Str("document_id", documentID).Logger()
	log.Info().Msg("starting document processing")
	start := time.Now()

	doc, err := p.docs.FindByID(ctx, nil, documentID)
	if err != nil {
		log.Error().Err(err).Msg("document lookup failed")
		return err
	}

	if err := doc.MarkProcessing(); err != nil {
		return err
	}
	// Persist immediately so a concurrent status read sees 'processing'.
	if err := p.docs.Save(ctx, nil, doc); err != nil {
		return p.fail(ctx, documentID, start, fmt.Errorf("%w: mark processing: %v", domain.ErrPersistence, err))
	}

	result, summary, err := p.analyze(ctx, doc)
	if err != nil {
		return p.fail(ctx, documentID, start, err)
	}

	if err := doc.MarkCompleted(result, summary); err != nil {
		return p.fail(ctx, documentID, start, err)
	}
	// Status and both result fields land in one save, so no reader ever
	// observes 'completed' with a missing result.
	if err := p.docs.Save(ctx, nil, doc); err != nil {
		return p.fail(ctx, documentID, start, fmt.Errorf("%w: save results: %v", domain.ErrPersistence, err))
	}

	elapsed := time.Since(start)
	metrics.ObservePipeline(string(model.StatusCompleted), elapsed.Seconds())
	log.Info().Dur("duration", elapsed).Msg("document processing completed")
	return nil
}

// analyze runs the extraction and both insight calls. Steps are sequential;
// either both analysis results come back or the whole unit fails.
func (p *processingUC) analyze(ctx context.Context, doc *model.Document) (result, summary string, err error) {
	raw, err := p.storage.Load(ctx, doc.StorageKey)
	if err != nil {
		return "", "", fmt.Errorf("%w: load %s: %v", domain.ErrExtraction, doc.StorageKey, err)
	}

	text, err := p.extractor.Extract(raw, doc.ContentType, doc.Filename)
	if err != nil {
		return "", "", err
	}

	summary, err = p.timedCall(ctx, "summarize", text, p.insight.Summarize)
	if err != nil {
		return "", "", err
	}
	clauses, err := p.timedCall(ctx, "extract_clauses", text, p.insight.ExtractClauses)
	if err != nil {
		return "", "", err
	}

	return text + "\n\n--- AI ANALYSIS ---\n" + clauses, summary, nil
}

func (p *processingUC) timedCall(ctx context.Context, op, text string, call func(context.Context, string) (string, error)) (string, error) {
	start := time.Now()
	out, err := call(ctx, text)
	metrics.ObserveAICall(op, int(time.Since(start)/time.Millisecond), err == nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// fail transitions the document to failed, best-effort. It re-fetches the
// record so a stale in-memory copy cannot clobber concurrent state, and a
// failing save here is logged but never propagated to the dispatch harness.
func (p *processingUC) fail(ctx context.Context, documentID string, start time.Time, cause error) error {
	log := p.log.With().Str("document_id", documentID).Logger()
	log.Error().Err(cause).Msg("document processing failed")
	metrics.ObservePipeline(string(model.StatusFailed), time.Since(start).Seconds())

	doc, err := p.docs.FindByID(ctx, nil, documentID)
	if err != nil {
		log.Error().Err(err).Msg("could not reload document for failed transition")
		return cause
	}
	if err := doc.MarkFailed(cause.Error()); err != nil {
		log.Warn().Err(err).Str("status", string(doc.Status)).Msg("failed transition rejected")
		return cause
	}
	if err := p.docs.Save(ctx, nil, doc); err != nil {
		log.Error().Err(err).Msg("could not persist failed status")
	}
	return cause
}
