package adapter

import "context"

// InsightAdapter is the port for the external language-model service that
// turns extracted document text into analysis artifacts.
//
// Each call is a single synchronous request/response pair; there is no retry
// or streaming at this layer. Implementations surface transport/service
// failures as errors wrapping domain.ErrAIService so the processing pipeline
// can apply its failure policy instead of persisting placeholder content.
type InsightAdapter interface {
	// Summarize returns a concise summary of the document text.
	Summarize(ctx context.Context, text string) (string, error)
	// ExtractClauses returns key clauses and potential risks found in the
	// document text, as free-form text.
	ExtractClauses(ctx context.Context, text string) (string, error)
}
