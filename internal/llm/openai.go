package llm

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/symptom-ai/internal/config"
)

// OpenAI client implementation, also used for Azure OpenAI deployments
type OpenAI struct {
	client   *openai.Client
	provider string
	defaults Options
}

func NewOpenAI(cfg *config.Config) (*OpenAI, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	var client *openai.Client

	switch cfg.LLM.Provider {
	case config.ProviderAzure:
		client = openai.NewClient(
			azure.WithEndpoint(cfg.OpenAI.APIEndpoint, cfg.OpenAI.APIVersion),
			azure.WithAPIKey(cfg.OpenAI.APIKey),
			option.WithMaxRetries(0),
		)
	default: // "openai"
		client = openai.NewClient(
			option.WithAPIKey(cfg.OpenAI.APIKey),
			option.WithBaseURL(cfg.OpenAI.APIEndpoint),
			option.WithMaxRetries(0),
		)
	}

	return &OpenAI{
		client:   client,
		provider: cfg.LLM.Provider,
		defaults: Options{
			Model:       cfg.Model(),
			MaxTokens:   cfg.LLM.MaxOutputTokens,
			Temperature: cfg.LLM.Temperature,
		},
	}, nil
}

func (o *OpenAI) Analyze(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error) {
	options := applyOptions(o.defaults, opts)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(systemMessages)+len(userMessages))
	for _, m := range systemMessages {
		messages = append(messages, openai.SystemMessage(m))
	}
	for _, m := range userMessages {
		messages = append(messages, openai.UserMessage(m))
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.F(options.Model),
		Messages:    openai.F(messages),
		Temperature: openai.F(options.Temperature),
		MaxTokens:   openai.F(options.MaxTokens),
	}
	if options.JSON {
		params.ResponseFormat = openai.F[openai.ChatCompletionNewParamsResponseFormatUnion](
			openai.ResponseFormatJSONObjectParam{
				Type: openai.F(openai.ResponseFormatJSONObjectTypeJSONObject),
			},
		)
	}

	slog.Debug("Sending chat completion request", "provider", o.provider, "model", options.Model)

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		llmErr := &Error{Provider: o.provider, Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			llmErr.StatusCode = apiErr.StatusCode
		}
		return nil, llmErr
	}

	response := &Response{
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) > 0 {
		response.Content = resp.Choices[0].Message.Content
	}

	return response, nil
}
