package llm

import "context"

type purposeKey struct{}

// WithPurpose labels the context with what this LLM call is for ("course",
// "assessment", ...). The logging layer stores the label with each event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the purpose label, "unknown" when absent.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}
