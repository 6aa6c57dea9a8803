package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/sozercan/symptom-ai/internal/config"
)

// Gemini client implementation backed by the Google GenAI SDK
type Gemini struct {
	client   *genai.Client
	defaults Options
}

func NewGemini(ctx context.Context, cfg *config.Config) (*Gemini, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Gemini.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Gemini.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client: client,
		defaults: Options{
			Model:       cfg.Gemini.Model,
			MaxTokens:   cfg.LLM.MaxOutputTokens,
			Temperature: cfg.LLM.Temperature,
		},
	}, nil
}

func (g *Gemini) Analyze(ctx context.Context, systemMessages []string, userMessages []string, opts ...Option) (*Response, error) {
	options := applyOptions(g.defaults, opts)

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(options.Temperature)),
		MaxOutputTokens: int32(options.MaxTokens),
	}
	if len(systemMessages) > 0 {
		genCfg.SystemInstruction = genai.NewContentFromText(strings.Join(systemMessages, "\n\n"), genai.RoleUser)
	}
	if options.JSON {
		genCfg.ResponseMIMEType = "application/json"
	}

	contents := make([]*genai.Content, 0, len(userMessages))
	for _, m := range userMessages {
		contents = append(contents, genai.NewContentFromText(m, genai.RoleUser))
	}

	slog.Debug("Sending generate content request", "provider", config.ProviderGemini, "model", options.Model)

	resp, err := g.client.Models.GenerateContent(ctx, options.Model, contents, genCfg)
	if err != nil {
		return nil, &Error{Provider: config.ProviderGemini, StatusCode: geminiStatus(err), Err: err}
	}

	response := &Response{
		Content: resp.Text(),
		Model:   resp.ModelVersion,
	}
	if resp.UsageMetadata != nil {
		response.Usage = Usage{
			PromptTokens:     int64(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int64(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return response, nil
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
