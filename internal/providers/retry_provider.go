package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

type backoffFactory func() backoff.BackOff

// retryingProvider wraps a Provider with exponential backoff retries.
type retryingProvider struct {
	inner        Provider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackoff   backoffFactory
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner Provider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) Provider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) FetchDataPack(ctx context.Context) (DataPack, error) {
	if r.inner == nil {
		return DataPack{}, ErrProviderUnavailable
	}

	var pack DataPack
	attempt := 0
	policy := &hintedBackOff{inner: r.newBackoff()}
	op := func() error {
		attempt++
		start := time.Now()
		got, err := r.inner.FetchDataPack(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			pack = got
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rl.RetryAfter)
			policy.hint = rl.RetryAfter
		}
		var perm *PermanentError
		if errors.As(err, &perm) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		r.log(ctx, slog.LevelWarn, "data pack fetch retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}

	bounded := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(op, bounded, notify); err != nil {
		r.log(ctx, slog.LevelWarn, "data pack fetch failed", "attempts", attempt, "err", err)
		return DataPack{}, err
	}
	return pack, nil
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), level, r.providerName, msg, args...)
}

// hintedBackOff waits at least as long as the last Retry-After the host sent.
type hintedBackOff struct {
	inner backoff.BackOff
	hint  time.Duration
}

func (h *hintedBackOff) NextBackOff() time.Duration {
	next := h.inner.NextBackOff()
	if next != backoff.Stop && h.hint > next {
		next = h.hint
	}
	h.hint = 0
	return next
}

func (h *hintedBackOff) Reset() {
	h.hint = 0
	h.inner.Reset()
}
