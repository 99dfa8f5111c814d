package fixture

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/preston-bernstein/esports-sim/internal/providers"
)

//go:embed pack.json
var packJSON []byte

// Provider returns the built-in data pack, useful for local runs and tests.
type Provider struct {
	raw []byte
}

// New creates a fixture provider backed by the embedded pack.
func New() *Provider {
	return &Provider{raw: packJSON}
}

// FetchDataPack decodes a fresh copy of the embedded pack on every call.
func (p *Provider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	_ = ctx
	var pack providers.DataPack
	if err := json.Unmarshal(p.raw, &pack); err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: fmt.Errorf("fixture: decode pack: %w", err)}
	}
	if err := pack.Validate(); err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: err}
	}
	return pack, nil
}

// MustDataPack returns the embedded pack or panics; the pack ships with the binary.
func MustDataPack() providers.DataPack {
	pack, err := New().FetchDataPack(context.Background())
	if err != nil {
		panic(err)
	}
	return pack
}
