package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterCompleter_Validation(t *testing.T) {
	_, err := NewOpenRouterCompleter(OpenRouterOptions{Models: []string{"m"}})
	assert.ErrorIs(t, err, errNoAPIKey)

	_, err = NewOpenRouterCompleter(OpenRouterOptions{APIKey: "k"})
	assert.Error(t, err)
}

func TestOpenRouterCompleter_TriesModelsInOrder(t *testing.T) {
	var (
		mu     sync.Mutex
		models []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "https://gigbook.local", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "gigbook", r.Header.Get("X-Title"))

		var req openRouterRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.Len(t, req.Messages, 2) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		assert.Equal(t, 1000, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "sys", req.Messages[0].Content)
		assert.Equal(t, "user", req.Messages[1].Role)

		mu.Lock()
		models = append(models, req.Model)
		mu.Unlock()

		switch req.Model {
		case "down":
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
		case "empty":
			_, _ = w.Write([]byte(`{"choices":[]}`))
		default:
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"tudo certo"}}]}`))
		}
	}))
	defer srv.Close()

	c, err := NewOpenRouterCompleter(OpenRouterOptions{
		URL:     srv.URL,
		APIKey:  "secret",
		Models:  []string{"down", "empty", "ok", "unused"},
		Referer: "https://gigbook.local",
	})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), "sys", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "tudo certo", out)
	assert.Equal(t, []string{"down", "empty", "ok"}, models)
}

func TestOpenRouterCompleter_AllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c, err := NewOpenRouterCompleter(OpenRouterOptions{URL: srv.URL, APIKey: "k", Models: []string{"a", "b"}})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: rate limited")
	assert.Contains(t, err.Error(), "b: rate limited")
}

func TestOpenRouterCompleter_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c, err := NewOpenRouterCompleter(OpenRouterOptions{URL: srv.URL, APIKey: "k", Models: []string{"a"}})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "p")
	assert.ErrorContains(t, err, "decode response")
}
