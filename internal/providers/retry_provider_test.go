package providers

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/esports-sim/internal/metrics"
)

type flakeyProvider struct {
	failures int
	calls    int
	err      error
}

func (f *flakeyProvider) FetchDataPack(ctx context.Context) (DataPack, error) {
	_ = ctx
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return DataPack{}, f.err
		}
		return DataPack{}, errors.New("boom")
	}
	return DataPack{Name: "ok"}, nil
}

func noWait(rp Provider) *retryingProvider {
	r := rp.(*retryingProvider)
	r.newBackoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return r
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rp := noWait(NewRetryingProvider(fp, slog.Default(), metrics.NewRecorder(), "flakey", 3, time.Millisecond))

	pack, err := rp.FetchDataPack(context.Background())
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if pack.Name != "ok" {
		t.Fatalf("unexpected pack %+v", pack)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := noWait(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond))

	if _, err := rp.FetchDataPack(context.Background()); err == nil {
		t.Fatal("expected error after retries")
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetryPermanentErrors(t *testing.T) {
	cause := errors.New("malformed")
	fp := &flakeyProvider{failures: 5, err: &PermanentError{Err: cause}}
	rp := noWait(NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 4, time.Millisecond))

	_, err := rp.FetchDataPack(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("expected permanent cause, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rp.FetchDataPack(ctx); err == nil {
		t.Fatal("expected context error")
	}
	if fp.calls > 1 {
		t.Fatalf("expected at most one attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRecordsRateLimitMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{Provider: "rl", StatusCode: 429}}
	rp := noWait(NewRetryingProvider(fp, nil, rec, "rl", 2, time.Millisecond))

	pack, err := rp.FetchDataPack(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if pack.Name != "ok" {
		t.Fatalf("unexpected pack %+v", pack)
	}
	if got := rec.RateLimitHits("rl"); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
	if got := rec.ProviderCalls("rl"); got != 2 {
		t.Fatalf("expected 2 provider calls, got %d", got)
	}
	if got := rec.ProviderErrors("rl"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
}

func TestRetryingProviderWithoutInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "none", 1, 0)
	if _, err := rp.FetchDataPack(context.Background()); !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestHintedBackOffHonorsRetryAfter(t *testing.T) {
	h := &hintedBackOff{inner: backoff.NewConstantBackOff(10 * time.Millisecond)}
	h.hint = time.Second
	if got := h.NextBackOff(); got != time.Second {
		t.Fatalf("expected hint to win, got %s", got)
	}
	if got := h.NextBackOff(); got != 10*time.Millisecond {
		t.Fatalf("expected hint to clear, got %s", got)
	}

	stopped := &hintedBackOff{inner: &backoff.StopBackOff{}, hint: time.Second}
	if got := stopped.NextBackOff(); got != backoff.Stop {
		t.Fatalf("expected stop to win over hint, got %s", got)
	}
}
