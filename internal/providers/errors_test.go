package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(err)
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestPermanentErrorUnwraps(t *testing.T) {
	cause := errors.New("bad json")
	err := fmt.Errorf("load: %w", &PermanentError{Err: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to unwrap")
	}
	var perm *PermanentError
	if !errors.As(err, &perm) || perm.Error() != "bad json" {
		t.Fatalf("expected permanent error, got %v", err)
	}
}
