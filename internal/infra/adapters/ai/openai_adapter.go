package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/pkoukk/tiktoken-go"

	"legal-document-insight/internal/domain"
	"legal-document-insight/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.InsightAdapter = (*OpenAIAdapter)(nil)

const (
	summarizePrompt = "Summarize the following legal document concisely:\n\n"
	clausesPrompt   = "Extract key clauses and potential risks from this legal document. " +
		"Format as JSON if possible, otherwise list them:\n\n"
)

// OpenAIAdapter implements the insight port using the Chat Completions API.
type OpenAIAdapter struct {
	client    openai.Client
	model     string
	maxInput  int // prompt token budget; longer documents are truncated
	maxOutput int
	encoding  *tiktoken.Tiktoken
}

func NewOpenAIAdapter(apiKey, baseURL, model string, maxInput, maxOutput int) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(60 * time.Second),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Unknown model name; cl100k_base is a reasonable counting fallback.
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("tiktoken encoding: %w", err)
		}
	}

	return &OpenAIAdapter{
		client:    openai.NewClient(opts...),
		model:     model,
		maxInput:  maxInput,
		maxOutput: maxOutput,
		encoding:  enc,
	}, nil
}

func (o *OpenAIAdapter) Summarize(ctx context.Context, text string) (string, error) {
	return o.complete(ctx, summarizePrompt+o.truncate(text))
}

func (o *OpenAIAdapter) ExtractClauses(ctx context.Context, text string) (string, error) {
	return o.complete(ctx, clausesPrompt+o.truncate(text))
}

func (o *OpenAIAdapter) complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if o.maxOutput > 0 {
		params.MaxTokens = openai.Int(int64(o.maxOutput))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", domain.ErrAIService, err)
	}
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", fmt.Errorf("%w: openai: empty completion", domain.ErrAIService)
}

// truncate clips the document text to the configured prompt token budget.
func (o *OpenAIAdapter) truncate(text string) string {
	if o.maxInput <= 0 {
		return text
	}
	tokens := o.encoding.Encode(text, nil, nil)
	if len(tokens) <= o.maxInput {
		return text
	}
	return o.encoding.Decode(tokens[:o.maxInput])
}
