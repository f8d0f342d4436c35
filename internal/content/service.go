// Package content orchestrates LLM-backed generation of learning material.
// Each operation builds a prompt for one of the agent roles, sends it
// through the provider stack, and runs the raw response through extraction
// and normalization so the caller always receives a structurally complete
// record.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/courseforge/courseforge/internal/agents"
	"github.com/courseforge/courseforge/internal/llm"
	"github.com/courseforge/courseforge/internal/logger"
	"github.com/courseforge/courseforge/internal/normalize"
)

// ErrInvalidStructure reports that the model's response could not be shaped
// into the required record and no fallback applies.
var ErrInvalidStructure = errors.New("response did not contain a usable structure")

// Service coordinates prompt construction, LLM calls, and normalization.
type Service struct {
	provider llm.Provider
	registry *agents.Registry
	log      *logger.Logger
}

// New creates a content Service.
func New(provider llm.Provider, registry *agents.Registry, log *logger.Logger) *Service {
	return &Service{provider: provider, registry: registry, log: log}
}

// Result carries generated data plus metadata notes for the response
// envelope. DefaultsUsed is set when normalization had to synthesize
// structure the model failed to provide.
type Result struct {
	Data         any
	Meta         map[string]any
	DefaultsUsed bool
}

func (r *Result) note(s string) {
	if r.Meta == nil {
		r.Meta = map[string]any{}
	}
	r.Meta["note"] = s
}

// generate runs one prompt through the provider using the given role's
// system message and sampling parameters. The purpose label tags the call
// in the event log.
func (s *Service) generate(ctx context.Context, role agents.Role, purpose, prompt string) (string, error) {
	return s.generateStructured(ctx, role, purpose, prompt, nil)
}

// generateStructured is generate with a response schema attached, so
// providers request structured output and validate what comes back. A
// response that still fails validation after the retry budget is not a
// hard failure: the raw body is returned for the extraction chain to
// salvage.
func (s *Service) generateStructured(ctx context.Context, role agents.Role, purpose, prompt string, schema *llm.Schema) (string, error) {
	agent, err := s.registry.Get(role)
	if err != nil {
		return "", err
	}

	ctx = llm.WithPurpose(ctx, purpose)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      agent.System,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Schema:      schema,
		MaxTokens:   agent.Params.MaxTokens,
		Temperature: agent.Params.Temperature,
	})
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) && len(invalid.Content) > 0 {
			s.log.Warn("response failed schema validation, salvaging body",
				zap.String("purpose", purpose),
				zap.Error(err))
			return string(invalid.Content), nil
		}
		return "", fmt.Errorf("%s generation: %w", purpose, err)
	}

	s.log.Debug("llm response received",
		zap.String("purpose", purpose),
		zap.String("role", string(role)),
		zap.Int("bytes", len(resp.Content)))

	return string(resp.Content), nil
}

// contextSuffix renders optional request context as a prompt addition.
func contextSuffix(extra map[string]any) string {
	if len(extra) == 0 {
		return ""
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\n\nAdditional context: %s", b)
}

// normCtx builds the normalization context shared by most operations.
func normCtx(topic, difficulty, duration string) normalize.Context {
	return normalize.Context{Topic: topic, Difficulty: difficulty, Duration: duration}
}
