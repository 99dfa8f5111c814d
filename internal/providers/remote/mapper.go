package remote

import (
	"strings"

	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/providers"
)

func mapPack(p packPayload, version string) providers.DataPack {
	name := p.Name
	if version != "" {
		name = name + "@" + version
	}
	out := providers.DataPack{
		Name:             name,
		FirstNames:       p.FirstNames,
		LastNames:        p.LastNames,
		NicknamePrefixes: p.NicknamePrefixes,
		NicknameSuffixes: p.NicknameSuffixes,
		NicknameWords:    p.NicknameWords,
		TeamNames:        p.TeamNames,
		Regions:          p.Regions,
	}
	for _, c := range p.Countries {
		pop := c.Popularity
		if pop <= 0 {
			pop = 1
		}
		out.Countries = append(out.Countries, providers.Country{Name: c.Name, Code: strings.ToUpper(c.Code), Popularity: pop})
	}
	for _, m := range p.Maps {
		out.Maps = append(out.Maps, mapMap(m))
	}
	return out
}

func mapMap(m mapResponse) matches.Map {
	return matches.Map{
		ID:         mapID(m.Name),
		Name:       m.Name,
		AttackBias: attackBias(m.TSideWinRate),
	}
}

// mapID slugs a display name: "Dust II" becomes "dust-ii".
func mapID(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}

// attackBias converts a percentage win rate into the round probability offset.
// A missing rate is treated as balanced.
func attackBias(rate float64) float64 {
	if rate <= 0 {
		return 0
	}
	b := (rate - 50) / 100
	if b > maxAttackBias {
		return maxAttackBias
	}
	if b < -maxAttackBias {
		return -maxAttackBias
	}
	return b
}
