// Package generator draws new players, coaches, and teams from a data pack.
//
// Every draw goes through the injected random.Source, so a seed plus a pack
// reproduces the same world.
package generator

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/preston-bernstein/esports-sim/internal/development"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/providers"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/tournament"
)

// Distribution constants for the bell curves.
const (
	SkillMean   = 10.0
	SkillStdDev = 3.0
	// Specialist skills spread wider so true AWPers and leaders stand out.
	SpecialistStdDev = 4.0

	AgeMean   = 22.0
	AgeStdDev = 4.0
	MinAge    = 16
	MaxAge    = 35

	ProspectMaxAge = 19

	StartingMorale = 60.0
	// ExperiencePerYear approximates the career experience of a player who
	// turned pro at MinAge.
	ExperiencePerYear = 60.0
)

// Generator draws entities from a validated pack.
type Generator struct {
	pack        providers.DataPack
	src         random.Source
	phase       func(players.Player) players.Phase
	countryPool int
	usedNames   map[string]int
}

// New validates the pack and returns a generator.
func New(pack providers.DataPack, src random.Source) (*Generator, error) {
	if err := pack.Validate(); err != nil {
		return nil, err
	}
	pool := 0
	for _, c := range pack.Countries {
		pool += weight(c)
	}
	dev := development.New(development.DefaultConfig(), src)
	return &Generator{
		pack:        pack,
		src:         src,
		phase:       dev.PhaseFor,
		countryPool: pool,
		usedNames:   make(map[string]int),
	}, nil
}

// Pack returns the pack the generator draws from.
func (g *Generator) Pack() providers.DataPack {
	return g.pack
}

func weight(c providers.Country) int {
	if c.Popularity <= 0 {
		return 1
	}
	return c.Popularity
}

func (g *Generator) skill(stddev float64) int {
	return players.ClampSkill(int(math.Round(random.Normal(g.src, SkillMean, stddev))))
}

// Skills draws a full attribute set on the bell curve.
func (g *Generator) Skills() players.Skills {
	return players.Skills{
		Aim:          g.skill(SkillStdDev),
		ReactionTime: g.skill(SkillStdDev),
		Positioning:  g.skill(SkillStdDev),
		Utility:      g.skill(SkillStdDev),
		Clutch:       g.skill(SkillStdDev),
		Consistency:  g.skill(SkillStdDev),
		Mental:       g.skill(SkillStdDev),
		GameSense:    g.skill(SkillStdDev),
		Movement:     g.skill(SkillStdDev),

		AWP:        g.skill(SpecialistStdDev),
		Rifle:      g.skill(SkillStdDev),
		Pistol:     g.skill(SkillStdDev),
		Leadership: g.skill(SpecialistStdDev),
		Anchor:     g.skill(SkillStdDev),
		Entry:      g.skill(SkillStdDev),
		Lurking:    g.skill(SkillStdDev),

		Teamwork:    g.skill(SkillStdDev),
		WorkEthic:   g.skill(SkillStdDev),
		Temperament: g.skill(SkillStdDev),
	}
}

// Age draws an age on the bell curve, clamped to the playable range.
func (g *Generator) Age() int {
	age := int(math.Floor(random.Normal(g.src, AgeMean, AgeStdDev)))
	if age < MinAge {
		return MinAge
	}
	if age > MaxAge {
		return MaxAge
	}
	return age
}

// Nickname is either prefix+suffix or a single word, half the time each.
func (g *Generator) Nickname() string {
	hasCompound := len(g.pack.NicknamePrefixes) > 0 && len(g.pack.NicknameSuffixes) > 0
	if len(g.pack.NicknameWords) == 0 || (hasCompound && random.Chance(g.src, 0.5)) {
		return random.Pick(g.src, g.pack.NicknamePrefixes) + random.Pick(g.src, g.pack.NicknameSuffixes)
	}
	return random.Pick(g.src, g.pack.NicknameWords)
}

// Nationality draws a country weighted by popularity.
func (g *Generator) Nationality() providers.Country {
	n := g.src.Intn(g.countryPool)
	for _, c := range g.pack.Countries {
		n -= weight(c)
		if n < 0 {
			return c
		}
	}
	return g.pack.Countries[len(g.pack.Countries)-1]
}

// Player draws a free agent.
func (g *Generator) Player() players.Player {
	return g.playerAged(g.Age())
}

// Prospect draws a young free agent used to refill rosters after retirements.
func (g *Generator) Prospect() players.Player {
	return g.playerAged(random.Between(g.src, MinAge, ProspectMaxAge))
}

func (g *Generator) playerAged(age int) players.Player {
	p := players.Player{
		ID:          random.UUID(g.src),
		FirstName:   random.Pick(g.src, g.pack.FirstNames),
		LastName:    random.Pick(g.src, g.pack.LastNames),
		Nickname:    g.Nickname(),
		Nationality: g.Nationality().Code,
		Age:         age,
		Skills:      g.Skills(),
	}
	p.MapProficiency = make(map[string]int, len(g.pack.Maps))
	for _, m := range g.pack.Maps {
		p.MapProficiency[m.ID] = g.skill(SkillStdDev)
	}
	p.Role = p.Skills.BestRole()

	years := float64(age - MinAge)
	exp := years*ExperiencePerYear + random.Normal(g.src, 0, ExperiencePerYear/2)
	if exp < 0 {
		exp = 0
	}
	p.Career = players.Career{
		Form:       players.FormAverage,
		Morale:     StartingMorale,
		Experience: math.Round(exp),
	}
	p.Career.Phase = g.phase(p)
	return p
}

// Coach draws a coach with bell-curve attributes.
func (g *Generator) Coach() teams.Coach {
	return teams.Coach{
		Name:       random.Pick(g.src, g.pack.FirstNames) + " " + random.Pick(g.src, g.pack.LastNames),
		Tactical:   g.skill(SkillStdDev),
		Leadership: g.skill(SkillStdDev),
		Mental:     g.skill(SkillStdDev),
		Reputation: g.skill(SpecialistStdDev),
	}
}

func (g *Generator) slider() float64 {
	v := random.Normal(g.src, 50, 15)
	return math.Round(math.Max(0, math.Min(100, v)))
}

// Team draws an organization with no roster. Names repeat with a numeral
// once the pack's list is exhausted.
func (g *Generator) Team(name string) teams.Team {
	g.usedNames[name]++
	if n := g.usedNames[name]; n > 1 {
		name = fmt.Sprintf("%s %s", name, roman(n))
	}
	region := ""
	if len(g.pack.Regions) > 0 {
		region = random.Pick(g.src, g.pack.Regions)
	}
	return teams.Team{
		ID:     random.UUID(g.src),
		Name:   name,
		Tag:    Tag(name),
		Region: region,
		Coach:  g.Coach(),
		Style: teams.PlayStyle{
			Aggression:    g.slider(),
			TacticalDepth: g.slider(),
			AWPDependence: g.slider(),
			Adaptability:  g.slider(),
			Chemistry:     math.Round(random.Normal(g.src, 50, 10)),
		},
		Elo:        tournament.DefaultElo,
		Reputation: random.Between(g.src, 20, 80),
	}
}

// League draws n teams, each with a full roster of fresh players and one
// substitute. Roles are assigned from the roster's skills.
func (g *Generator) League(n int) ([]teams.Team, []players.Player) {
	outTeams := make([]teams.Team, 0, n)
	outPlayers := make([]players.Player, 0, n*(teams.RosterSize+1))
	for i := 0; i < n; i++ {
		t := g.Team(g.pack.TeamNames[i%len(g.pack.TeamNames)])
		roster := make([]players.Player, 0, teams.RosterSize+1)
		for j := 0; j < teams.RosterSize+1; j++ {
			p := g.Player()
			t.AddPlayer(p.ID)
			roster = append(roster, p)
		}
		AssignRoles(&t, roster)
		outTeams = append(outTeams, t)
		outPlayers = append(outPlayers, roster...)
	}
	return outTeams, outPlayers
}

// AssignRoles hands each role, in priority order, to the best-suited roster
// player that has none yet. Ties go to the earlier roster slot.
func AssignRoles(t *teams.Team, pool []players.Player) {
	byID := make(map[string]players.Player, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}
	t.Roles = nil
	taken := make(map[string]bool, len(t.Roster))
	for _, role := range players.Roles {
		best := ""
		bestScore := -1.0
		for _, id := range t.Roster {
			p, ok := byID[id]
			if !ok || taken[id] {
				continue
			}
			if s := p.Skills.RoleScore(role); s > bestScore {
				best, bestScore = id, s
			}
		}
		if best == "" {
			continue
		}
		if err := t.AssignRole(role, best); err == nil {
			taken[best] = true
		}
	}
}

// Tag abbreviates a team name: initials of multi-word names, otherwise the
// first four letters, upper-cased.
func Tag(name string) string {
	words := strings.Fields(name)
	if len(words) > 1 {
		var b strings.Builder
		for _, w := range words {
			b.WriteString(strings.ToUpper(string([]rune(w)[:1])))
		}
		return b.String()
	}
	r := []rune(name)
	if len(r) > 4 {
		r = r[:4]
	}
	return strings.ToUpper(string(r))
}

func roman(n int) string {
	numerals := []struct {
		v int
		s string
	}{{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"}}
	var b strings.Builder
	for _, r := range numerals {
		for n >= r.v {
			b.WriteString(r.s)
			n -= r.v
		}
	}
	return b.String()
}

// FreeAgents draws count players sorted strongest first.
func (g *Generator) FreeAgents(count int) []players.Player {
	out := make([]players.Player, count)
	for i := range out {
		out[i] = g.Player()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Skills.Overall() > out[j].Skills.Overall()
	})
	return out
}
