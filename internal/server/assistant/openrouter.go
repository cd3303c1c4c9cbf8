package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"

	openRouterMaxTokens   = 1000
	openRouterTemperature = 0.7
	maxResponseBytes      = 1 << 20
)

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

type openRouterResponse struct {
	Choices []struct {
		Message openRouterMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OpenRouterOptions configures an OpenRouterCompleter.
type OpenRouterOptions struct {
	URL     string
	APIKey  string
	Models  []string
	Referer string
	Title   string
	Timeout time.Duration
}

// OpenRouterCompleter calls the OpenRouter chat completions endpoint,
// trying each configured model until one answers.
type OpenRouterCompleter struct {
	url        string
	apiKey     string
	models     []string
	referer    string
	title      string
	httpClient *http.Client
}

func NewOpenRouterCompleter(o OpenRouterOptions) (*OpenRouterCompleter, error) {
	if o.APIKey == "" {
		return nil, errNoAPIKey
	}
	if len(o.Models) == 0 {
		return nil, errors.New("no openrouter models configured")
	}
	if o.URL == "" {
		o.URL = DefaultOpenRouterURL
	}
	if o.Title == "" {
		o.Title = "gigbook"
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}

	return &OpenRouterCompleter{
		url:        o.URL,
		apiKey:     o.APIKey,
		models:     append([]string(nil), o.Models...),
		referer:    o.Referer,
		title:      o.Title,
		httpClient: &http.Client{Timeout: o.Timeout},
	}, nil
}

func (c *OpenRouterCompleter) Name() string { return "openrouter" }

func (c *OpenRouterCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	var errs []error
	for _, model := range c.models {
		text, err := c.completeWith(ctx, model, system, prompt)
		if err == nil {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", model, err))
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("openrouter: %w", errors.Join(errs...))
}

func (c *OpenRouterCompleter) completeWith(ctx context.Context, model, system, prompt string) (string, error) {
	body, err := json.Marshal(openRouterRequest{
		Model: model,
		Messages: []openRouterMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   openRouterMaxTokens,
		Temperature: openRouterTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	req.Header.Set("X-Title", c.title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out openRouterResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.Error != nil {
		return "", errors.New(out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", errEmptyResponse
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
