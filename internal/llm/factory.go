package llm

import (
	"context"
	"fmt"

	"github.com/courseforge/courseforge/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → timeout → refusal → logging → base
	logged := WithLogging(base, eventRepo)
	checked := WithRefusalCheck(logged)
	bounded := WithTimeout(checked, cfg.Timeout)
	retried := WithRetry(bounded, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv builds a provider from COURSEFORGE_* environment
// variables. When the configured provider is missing its API key, standard
// key variables (GEMINI_API_KEY, OPENAI_API_KEY, ...) are probed as a
// fallback before giving up.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
