package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "sk-or-test",
		Model:  "google/gemini-2.0-flash-exp",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewOpenRouterProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestOpenRouterModelNotRewritten(t *testing.T) {
	// Vendor-prefixed IDs must bypass the OpenAI friendly-name map, even
	// when the bare name would match an alias.
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "sk-or-test",
		Model:  "openai/gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider: %v", err)
	}
	if p.ModelID() != "openai/gpt-4o-mini" {
		t.Errorf("ModelID = %q, want prefix preserved", p.ModelID())
	}
}
