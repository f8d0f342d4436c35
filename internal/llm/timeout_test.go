package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// slowProvider waits for delay or context cancellation, whichever first.
type slowProvider struct {
	delay time.Duration
}

func (s *slowProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	select {
	case <-time.After(s.delay):
		return &Response{Content: json.RawMessage(`{}`)}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *slowProvider) ModelID() string { return "slow-model" }

func TestTimeout_FastResponsePasses(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: time.Millisecond}, time.Second)

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil {
		t.Fatal("expected response")
	}
}

func TestTimeout_ExpiryBecomesRetryable(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: time.Second}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable for per-attempt expiry, got %v", err)
	}
}

func TestTimeout_ParentCancellationNotConverted(t *testing.T) {
	p := WithTimeout(&slowProvider{delay: time.Second}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	var unavailable *ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		t.Fatal("parent cancellation must not be reported as retryable")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTimeout_DisabledWhenNonPositive(t *testing.T) {
	inner := &slowProvider{delay: time.Millisecond}
	if p := WithTimeout(inner, 0); p != inner {
		t.Fatal("non-positive timeout should return the inner provider unchanged")
	}
}
