package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type generateFunc func(ctx context.Context, model, system, prompt string) (string, error)

var newGenaiClient = genai.NewClient

// GeminiCompleter asks a Gemini model through the genai SDK.
type GeminiCompleter struct {
	model    string
	generate generateFunc
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, errNoAPIKey
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := newGenaiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiCompleter{
		model: model,
		generate: func(ctx context.Context, model, system, prompt string) (string, error) {
			cfg := &genai.GenerateContentConfig{}
			if system != "" {
				cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
			}
			resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func (g *GeminiCompleter) Name() string { return "gemini/" + g.model }

func (g *GeminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	text, err := g.generate(ctx, g.model, system, prompt)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("gemini %s: %w", g.model, errEmptyResponse)
	}
	return text, nil
}
