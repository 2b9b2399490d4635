package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/ports/adapter"
)

var _ adapter.InsightAdapter = (*GeminiAdapter)(nil)

// GeminiAdapter implements the insight port using the official Gemini SDK.
type GeminiAdapter struct {
	client *genai.Client
	model  string
	maxOut int
}

func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, model string, maxOut int) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, model: model, maxOut: maxOut}, nil
}

func (g *GeminiAdapter) Summarize(ctx context.Context, text string) (string, error) {
	return g.generate(ctx, summarizePrompt+text)
}

func (g *GeminiAdapter) ExtractClauses(ctx context.Context, text string) (string, error) {
	return g.generate(ctx, clausesPrompt+text)
}

func (g *GeminiAdapter) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			MaxOutputTokens: int32(g.maxOut),
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", domain.ErrAIService, err)
	}

	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if t := resp.Candidates[0].Content.Parts[0].Text; t != "" {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: gemini: empty response", domain.ErrAIService)
}
