package players

import "fmt"

// ClampSkill bounds v to the skill scale.
func ClampSkill(v int) int {
	if v < MinSkill {
		return MinSkill
	}
	if v > MaxSkill {
		return MaxSkill
	}
	return v
}

// ClampMorale bounds v to the morale scale.
func ClampMorale(v float64) float64 {
	if v < MinMorale {
		return MinMorale
	}
	if v > MaxMorale {
		return MaxMorale
	}
	return v
}

// Clamp bounds every attribute.
func (s *Skills) Clamp() {
	for _, f := range s.fields() {
		*f = ClampSkill(*f)
	}
}

// Valid reports whether every attribute is within bounds.
func (s Skills) Valid() bool {
	for _, f := range s.fields() {
		if *f < MinSkill || *f > MaxSkill {
			return false
		}
	}
	return true
}

func (s *Skills) fields() []*int {
	return []*int{
		&s.Aim, &s.ReactionTime, &s.Positioning, &s.Utility, &s.Clutch,
		&s.Consistency, &s.Mental, &s.GameSense, &s.Movement,
		&s.AWP, &s.Rifle, &s.Pistol, &s.Leadership, &s.Anchor, &s.Entry, &s.Lurking,
		&s.Teamwork, &s.WorkEthic, &s.Temperament,
	}
}

// Core is the mean of the attributes that drive round outcomes.
func (s Skills) Core() float64 {
	return float64(s.Aim+s.ReactionTime+s.Consistency+s.GameSense+s.Utility) / 5
}

// Overall is the mean of every attribute.
func (s Skills) Overall() float64 {
	fields := s.fields()
	total := 0
	for _, f := range fields {
		total += *f
	}
	return float64(total) / float64(len(fields))
}

// RoleScore rates how well the skills fit a role.
func (s Skills) RoleScore(r Role) float64 {
	switch r {
	case RoleAWPer:
		return float64(s.AWP*3+s.Aim*2+s.Positioning+s.ReactionTime) / 7
	case RoleIGL:
		return float64(s.Leadership*3+s.GameSense*2+s.Mental+s.Utility) / 7
	case RoleEntryFragger:
		return float64(s.Entry*3+s.Aim*2+s.ReactionTime+s.Movement) / 7
	case RoleSupport:
		return float64(s.Utility*3+s.Teamwork*2+s.Positioning+s.Anchor) / 7
	case RoleLurker:
		return float64(s.Lurking*3+s.GameSense*2+s.Clutch+s.Movement) / 7
	default:
		return float64(s.Rifle*3+s.Aim*2+s.Consistency+s.Positioning) / 7
	}
}

// BestRole returns the highest scoring role; ties favour earlier roles.
func (s Skills) BestRole() Role {
	best := RoleRifler
	bestScore := -1.0
	for _, r := range Roles {
		if score := s.RoleScore(r); score > bestScore {
			best, bestScore = r, score
		}
	}
	return best
}

// DisplayName renders `First "Nick" Last`.
func (p Player) DisplayName() string {
	return fmt.Sprintf("%s %q %s", p.FirstName, p.Nickname, p.LastName)
}

// KDA returns career kills per death, treating zero deaths as one.
func (p Player) KDA() float64 {
	deaths := p.Career.Deaths
	if deaths < 1 {
		deaths = 1
	}
	return float64(p.Career.Kills) / float64(deaths)
}

// IsInjured reports whether an injury countdown is running.
func (p Player) IsInjured() bool {
	return p.Career.InjuryDays > 0
}

// IsRetired reports whether the player has left competition.
func (p Player) IsRetired() bool {
	return p.Career.Phase == PhaseRetired
}

// IsFreeAgent reports whether the player has no team.
func (p Player) IsFreeAgent() bool {
	return p.TeamID == ""
}

// Proficiency returns the map proficiency, defaulting to the midpoint.
func (p Player) Proficiency(mapID string) int {
	if v, ok := p.MapProficiency[mapID]; ok {
		return v
	}
	return (MinSkill + MaxSkill) / 2
}

// AddEvent appends a history entry.
func (p *Player) AddEvent(day int, typ EventType, description string) {
	p.Career.History = append(p.Career.History, CareerEvent{Day: day, Type: typ, Description: description})
}

// Clone returns a deep copy.
func (p Player) Clone() Player {
	out := p
	if p.MapProficiency != nil {
		out.MapProficiency = make(map[string]int, len(p.MapProficiency))
		for k, v := range p.MapProficiency {
			out.MapProficiency[k] = v
		}
	}
	if p.Career.Maps != nil {
		out.Career.Maps = make(map[string]MapStats, len(p.Career.Maps))
		for k, v := range p.Career.Maps {
			out.Career.Maps[k] = v
		}
	}
	if p.Career.History != nil {
		out.Career.History = append([]CareerEvent(nil), p.Career.History...)
	}
	return out
}
