// Package jsonfile loads a data pack from a JSON document on disk.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/preston-bernstein/esports-sim/internal/providers"
)

type Provider struct {
	path     string
	readFile func(string) ([]byte, error)
}

func New(path string) *Provider {
	return &Provider{path: path, readFile: os.ReadFile}
}

// FetchDataPack reads and validates the file. Every failure is permanent: retrying a bad file is pointless.
func (p *Provider) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	if err := ctx.Err(); err != nil {
		return providers.DataPack{}, err
	}
	if p.path == "" {
		return providers.DataPack{}, providers.ErrProviderUnavailable
	}
	raw, err := p.readFile(p.path)
	if err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: fmt.Errorf("jsonfile: read %s: %w", p.path, err)}
	}
	var pack providers.DataPack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: fmt.Errorf("jsonfile: decode %s: %w", p.path, err)}
	}
	if pack.Name == "" {
		pack.Name = p.path
	}
	if err := pack.Validate(); err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: err}
	}
	return pack, nil
}
