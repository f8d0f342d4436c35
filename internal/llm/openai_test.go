package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  "gpt-4o-mini",
	}
}

func openaiCompletion(content, finishReason string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1756600000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": finishReason,
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     180,
			"completion_tokens": 95,
			"total_tokens":      275,
		},
	}
}

func TestOpenAIProviderGenerate(t *testing.T) {
	body := `{"questions":[{"question":"How do you learn best?","options":["videos","books"]}]}`
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openaiCompletion(body, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an assessment specialist.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate assessment questions."}},
		MaxTokens: 2000,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != body {
		t.Errorf("content = %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 275 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}
}

func TestOpenAIProviderTruncationStopReason(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openaiCompletion(`{"title":"cut of`, "length"))
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "course"}},
		MaxTokens: 10,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Errorf("stop reason = %q, want max_tokens", resp.StopReason)
	}
}

func TestOpenAIProviderValidatesSchema(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openaiCompletion(`{"title":"Go Basics","modules":[]}`, "stop"))
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "course"}},
		Schema:    outlineSchema(),
		MaxTokens: 1000,
	})

	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("got %T (%v), want ErrInvalidResponse for empty modules", err, err)
	}
}

func TestOpenAIProviderErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantRate bool
	}{
		{"rate limited", http.StatusTooManyRequests, true},
		{"server error", http.StatusInternalServerError, false},
		{"bad gateway", http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "server_error", "message": "nope"},
				})
			}

			p := newTestOpenAIProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "course"}},
				MaxTokens: 100,
			})
			if err == nil {
				t.Fatal("expected error")
			}

			var rl *ErrRateLimit
			if gotRate := errors.As(err, &rl); gotRate != tt.wantRate {
				t.Fatalf("rate limit classification = %v, want %v (err %v)", gotRate, tt.wantRate, err)
			}
		})
	}
}

func TestNewOpenAIProviderMapsAliases(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID = %q", p.ModelID())
	}

	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o-mini"}); err == nil {
		t.Fatal("expected error without API key")
	}
}
