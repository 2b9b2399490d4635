package ai

import (
	"context"

	"legal-document-insight/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.InsightAdapter = (*limitedInsight)(nil)

type limitedInsight struct {
	inner adapter.InsightAdapter
	sem   chan struct{}
}

// NewLimitedInsight bounds the number of concurrent calls to the external
// service across all pipeline runs.
func NewLimitedInsight(inner adapter.InsightAdapter, maxConcurrent int) adapter.InsightAdapter {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedInsight{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedInsight) Summarize(ctx context.Context, text string) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Summarize(ctx, text)
}

func (l *limitedInsight) ExtractClauses(ctx context.Context, text string) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.ExtractClauses(ctx, text)
}
