package teams

import (
	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
)

// AttackRate is the Laplace-smoothed attack round win rate.
func (r MapRecord) AttackRate() float64 {
	return float64(r.AttackRoundsWon+1) / float64(r.AttackRoundsPlayed+2)
}

// DefenseRate is the Laplace-smoothed defense round win rate.
func (r MapRecord) DefenseRate() float64 {
	return float64(r.DefenseRoundsWon+1) / float64(r.DefenseRoundsPlayed+2)
}

// WinRate is the Laplace-smoothed map win rate.
func (r MapRecord) WinRate() float64 {
	return float64(r.Wins+1) / float64(r.Played+2)
}

// Record returns the map record, zero if the map was never played.
func (t Team) Record(mapID string) MapRecord {
	return t.MapRecords[mapID]
}

// ValidateLineup checks the active roster can take the field.
func (t Team) ValidateLineup() error {
	if len(t.Roster) != RosterSize {
		return domain.Errorf(domain.ErrInvalidRoster, "team %s has %d active players", t.ID, len(t.Roster))
	}
	seen := make(map[string]struct{}, len(t.Roster))
	for _, id := range t.Roster {
		if _, dup := seen[id]; dup {
			return domain.Errorf(domain.ErrInvalidRoster, "team %s lists player %s twice", t.ID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// HasPlayer reports whether the player is on the roster or bench.
func (t Team) HasPlayer(playerID string) bool {
	return contains(t.Roster, playerID) || contains(t.Bench, playerID)
}

// AddPlayer fills the active roster first, then the bench.
func (t *Team) AddPlayer(playerID string) {
	if t.HasPlayer(playerID) {
		return
	}
	if len(t.Roster) < RosterSize {
		t.Roster = append(t.Roster, playerID)
		return
	}
	t.Bench = append(t.Bench, playerID)
}

// RemovePlayer drops the player from roster, bench, and role assignments.
func (t *Team) RemovePlayer(playerID string) {
	t.Roster = without(t.Roster, playerID)
	t.Bench = without(t.Bench, playerID)
	for role, id := range t.Roles {
		if id == playerID {
			delete(t.Roles, role)
		}
	}
}

// PromoteFromBench moves bench players up until the roster is full.
func (t *Team) PromoteFromBench() int {
	promoted := 0
	for len(t.Roster) < RosterSize && len(t.Bench) > 0 {
		t.Roster = append(t.Roster, t.Bench[0])
		t.Bench = t.Bench[1:]
		promoted++
	}
	return promoted
}

// AssignRole gives a role to a roster player. A role has one holder and a
// player holds one role, so previous assignments are released.
func (t *Team) AssignRole(role players.Role, playerID string) error {
	if !contains(t.Roster, playerID) {
		return domain.Errorf(domain.ErrInvalidArgument, "player %s is not on the active roster", playerID)
	}
	if t.Roles == nil {
		t.Roles = make(map[players.Role]string)
	}
	for r, id := range t.Roles {
		if id == playerID {
			delete(t.Roles, r)
		}
	}
	t.Roles[role] = playerID
	return nil
}

// RoleOf returns the role held by the player.
func (t Team) RoleOf(playerID string) (players.Role, bool) {
	for r, id := range t.Roles {
		if id == playerID {
			return r, true
		}
	}
	return "", false
}

// Clone returns a deep copy.
func (t Team) Clone() Team {
	out := t
	out.Roster = append([]string(nil), t.Roster...)
	if t.Bench != nil {
		out.Bench = append([]string(nil), t.Bench...)
	}
	if t.Roles != nil {
		out.Roles = make(map[players.Role]string, len(t.Roles))
		for k, v := range t.Roles {
			out.Roles[k] = v
		}
	}
	if t.MapRecords != nil {
		out.MapRecords = make(map[string]MapRecord, len(t.MapRecords))
		for k, v := range t.MapRecords {
			out.MapRecords[k] = v
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
