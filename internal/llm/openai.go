package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/legalchat/legalchat/internal/config"
)

// OpenAIProvider speaks the OpenAI chat-completions API, which also covers
// OpenAI-compatible local runtimes such as Ollama and vLLM.
type OpenAIProvider struct {
	client openai.Client
	cfg    config.LLMConfig
}

// NewOpenAIProvider builds a provider from the generation config.
func NewOpenAIProvider(cfg config.LLMConfig) *OpenAIProvider {
	clientOpts := []option.RequestOption{}
	if cfg.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIProvider{client: openai.NewClient(clientOpts...), cfg: cfg}
}

// Generate implements Provider.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := Apply(opts)

	model := p.cfg.Model
	if o.Model != "" {
		model = o.Model
	}
	temperature := p.cfg.Temperature
	if o.Temperature != nil {
		temperature = *o.Temperature
	}

	params := openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(temperature),
		TopP:                openai.Float(p.cfg.TopP),
		FrequencyPenalty:    openai.Float(p.cfg.FrequencyPenalty),
		MaxCompletionTokens: openai.Int(int64(p.cfg.MaxTokens)),
	}
	stop := p.cfg.Stop
	if o.Stop != nil {
		stop = o.Stop
	}
	if len(stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: stop}
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Provider = (*OpenAIProvider)(nil)
