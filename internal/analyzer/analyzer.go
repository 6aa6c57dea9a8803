package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sozercan/symptom-ai/internal/llm"
)

var SystemPrompt = `You are a cautious health information assistant. You help people understand
their symptoms in general terms so they can decide what to do next.

Rules you must always follow:
- Do NOT diagnose. Describe possibilities, never a conclusion.
- Do NOT prescribe medication, doses, or treatment plans.
- Do NOT interpret images, scans, photos, or lab results.
- If a message describes an emergency, say so plainly in redFlags and advise urgent care.

Respond with a single JSON object and nothing else, with exactly these fields:
- "summary": string, a short plain-language overview of what the user described.
- "differential": array of objects {"condition": string, "why": string}, most likely first.
- "homeCare": array of strings, general self-care suggestions.
- "redFlags": array of strings, symptoms that mean the user should seek care urgently.
- "disclaimer": string, a reminder that this is educational information only.`

const userPromptTemplate = `User message:
"""
%s
"""
Reply with the JSON object only.`

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

type Analyzer struct {
	llmProvider llm.Provider
	opts        Options
}

func New(llmProvider llm.Provider, opts Options) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
		opts:        opts,
	}
}

// Analyze asks the model about userText and returns its raw reply. Provider
// errors are returned as-is; there is exactly one attempt per call.
func (a *Analyzer) Analyze(ctx context.Context, userText string) (string, error) {
	slog.Info("Starting analysis", "chars", len(userText))
	startTime := time.Now()

	resp, err := a.llmProvider.Analyze(ctx,
		[]string{SystemPrompt},
		[]string{BuildUserPrompt(userText)},
		llm.WithJSONResponse(),
		llm.WithModel(a.opts.Model),
		llm.WithMaxTokens(a.opts.MaxTokens),
		llm.WithTemperature(a.opts.Temperature),
	)
	if err != nil {
		return "", fmt.Errorf("LLM analysis failed: %w", err)
	}

	slog.Debug("Analysis completed",
		"duration", time.Since(startTime).String(),
		"model", resp.Model,
		"tokens", resp.Usage.TotalTokens,
	)
	return resp.Content, nil
}

func BuildUserPrompt(userText string) string {
	return fmt.Sprintf(userPromptTemplate, userText)
}
