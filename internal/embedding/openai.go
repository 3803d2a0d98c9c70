package embedding

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/legalchat/legalchat/internal/config"
	"github.com/legalchat/legalchat/internal/tokenizer"
)

// OpenAIProvider calls an OpenAI-compatible embeddings endpoint.
// It truncates the input to the configured token budget before the call
// and L2-normalizes the returned vector.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	maxTokens int
	counter   *tokenizer.Counter
}

// NewOpenAIProvider builds a provider from config. counter may be nil, in
// which case no truncation is applied.
func NewOpenAIProvider(cfg config.EmbeddingConfig, counter *tokenizer.Counter) *OpenAIProvider {
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIProvider{
		client:    openai.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		counter:   counter,
	}
}

// GetEmbedding implements Provider.
func (p *OpenAIProvider) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrEmbedding)
	}
	if p.counter != nil && p.maxTokens > 0 {
		text = p.counter.Truncate(text, p.maxTokens)
	}

	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrEmbedding)
	}

	raw := resp.Data[0].Embedding
	vec := make([]float32, len(raw))
	for i, x := range raw {
		vec[i] = float32(x)
	}
	return Normalize(vec), nil
}
