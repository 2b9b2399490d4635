package ai

import (
	"context"
	"log"
	"time"

	"legal-document-insight/internal/domain/ports/adapter"
)

var _ adapter.InsightAdapter = (*NoopInsightAdapter)(nil)

// NoopInsightAdapter implements the insight port for local/dev testing.
// It logs the request and returns canned analysis text instead of calling a
// real language-model service.
type NoopInsightAdapter struct{}

func NewNoopInsightAdapter() *NoopInsightAdapter {
	return &NoopInsightAdapter{}
}

func (a *NoopInsightAdapter) Summarize(ctx context.Context, text string) (string, error) {
	if err := a.simulate(ctx); err != nil {
		return "", err
	}
	log.Printf("[noop-insight] summarize %d bytes\n", len(text))
	return "This is a noop summary.", nil
}

func (a *NoopInsightAdapter) ExtractClauses(ctx context.Context, text string) (string, error) {
	if err := a.simulate(ctx); err != nil {
		return "", err
	}
	log.Printf("[noop-insight] extract clauses from %d bytes\n", len(text))
	return "No clauses identified (noop adapter).", nil
}

func (a *NoopInsightAdapter) simulate(ctx context.Context) error {
	select {
	case <-time.After(100 * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
