package llm

import (
	"context"
	"strings"
)

// refusalMarkers are phrases that signal the model declined the task or
// needs clarification rather than answering. Matching is case-insensitive
// on a prefix window of the response so a legitimate answer that merely
// quotes one of these phrases deep in its body is not rejected.
var refusalMarkers = []string{
	"i'm sorry, i can't assist",
	"i'll need more information",
}

const refusalWindow = 200

// RefusalProvider is a decorator that rejects responses where the model
// refused or stalled, surfacing them as ErrUnhelpfulResponse so the retry
// layer can take another attempt.
type RefusalProvider struct {
	inner Provider
}

// WithRefusalCheck wraps a Provider with refusal detection.
func WithRefusalCheck(p Provider) Provider {
	return &RefusalProvider{inner: p}
}

func (r *RefusalProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := r.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	content := string(resp.Content)
	window := content
	if len(window) > refusalWindow {
		window = window[:refusalWindow]
	}
	lowered := strings.ToLower(window)
	for _, marker := range refusalMarkers {
		if strings.Contains(lowered, marker) {
			return nil, &ErrUnhelpfulResponse{Content: content}
		}
	}

	return resp, nil
}

func (r *RefusalProvider) ModelID() string {
	return r.inner.ModelID()
}
