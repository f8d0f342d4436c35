package llm

import (
	"context"
	"time"
)

// TimeoutProvider is a decorator that bounds each Generate attempt with a
// deadline. It sits inside the retry layer so every attempt gets a fresh
// budget; a request whose parent context already carries an earlier
// deadline keeps that one.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-attempt deadline. A non-positive
// timeout disables the wrapper.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(attemptCtx, req)
	if err != nil && attemptCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		// Only this attempt expired; the parent is still live, so report
		// a retryable condition rather than a context error.
		return nil, &ErrProviderUnavailable{Err: err}
	}
	return resp, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
