package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/esports-sim/internal/providers"
	"github.com/preston-bernstein/esports-sim/internal/providers/fixture"
)

// PackProvider returns the embedded fixture pack and counts fetches.
type PackProvider struct {
	Calls atomic.Int32
}

func (p *PackProvider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	p.Calls.Add(1)
	return fixture.MustDataPack(), nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	return providers.DataPack{}, p.Err
}

// PermanentErrProvider fails with a non-retryable error.
type PermanentErrProvider struct {
	Err error
}

func (p PermanentErrProvider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	return providers.DataPack{}, &providers.PermanentError{Err: p.Err}
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	return providers.DataPack{}, providers.ErrProviderUnavailable
}
