package providers

import (
	"context"
	"errors"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
)

// ErrProviderUnavailable is returned when no data pack source is configured.
var ErrProviderUnavailable = errors.New("data pack provider unavailable")

// MinMaps is the smallest map pool that supports a best-of-five veto.
const MinMaps = 7

// Country is a nationality players can be drawn from. Popularity weights the draw.
type Country struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	Popularity int    `json:"popularity"`
}

// DataPack carries the opaque input vectors the generator draws from.
type DataPack struct {
	Name             string        `json:"name"`
	FirstNames       []string      `json:"firstNames"`
	LastNames        []string      `json:"lastNames"`
	NicknamePrefixes []string      `json:"nicknamePrefixes"`
	NicknameSuffixes []string      `json:"nicknameSuffixes"`
	NicknameWords    []string      `json:"nicknameWords"`
	Countries        []Country     `json:"countries"`
	Maps             []matches.Map `json:"maps"`
	TeamNames        []string      `json:"teamNames"`
	Regions          []string      `json:"regions"`
}

// Validate reports packs the generator cannot draw from.
func (p DataPack) Validate() error {
	switch {
	case len(p.FirstNames) == 0 || len(p.LastNames) == 0:
		return domain.Errorf(domain.ErrInvalidConfig, "data pack %q has no names", p.Name)
	case len(p.NicknameWords) == 0 && (len(p.NicknamePrefixes) == 0 || len(p.NicknameSuffixes) == 0):
		return domain.Errorf(domain.ErrInvalidConfig, "data pack %q has no nicknames", p.Name)
	case len(p.Countries) == 0:
		return domain.Errorf(domain.ErrInvalidConfig, "data pack %q has no countries", p.Name)
	case len(p.Maps) < MinMaps:
		return domain.Errorf(domain.ErrInvalidConfig, "data pack %q has %d maps, need %d", p.Name, len(p.Maps), MinMaps)
	case len(p.TeamNames) == 0:
		return domain.Errorf(domain.ErrInvalidConfig, "data pack %q has no team names", p.Name)
	}
	seen := make(map[string]struct{}, len(p.Maps))
	for _, m := range p.Maps {
		if m.ID == "" {
			return domain.Errorf(domain.ErrInvalidConfig, "data pack %q has a map without id", p.Name)
		}
		if _, dup := seen[m.ID]; dup {
			return domain.Errorf(domain.ErrInvalidConfig, "data pack %q repeats map %s", p.Name, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}

// MapIDs lists the pack's map pool in declaration order.
func (p DataPack) MapIDs() []string {
	out := make([]string, len(p.Maps))
	for i, m := range p.Maps {
		out[i] = m.ID
	}
	return out
}

// Provider loads a data pack from some source.
type Provider interface {
	FetchDataPack(ctx context.Context) (DataPack, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (DataPack, error)

func (f ProviderFunc) FetchDataPack(ctx context.Context) (DataPack, error) {
	return f(ctx)
}
