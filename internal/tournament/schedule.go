// Package tournament schedules leagues and brackets, keeps standings, splits
// prize pools, and maintains the Elo world ranking.
package tournament

import (
	"fmt"
	"sort"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
)

const bye = ""

// RoundRobinSchedule pairs every team with every other team using the circle
// method. A double round robin is produced when the window holds enough days.
// Each round is played on its own day, so no team appears twice on a day.
func RoundRobinSchedule(prefix string, teamIDs []string, startDay, endDay, bestOf int) ([]tournaments.Fixture, error) {
	if len(teamIDs) < 2 {
		return nil, domain.Errorf(domain.ErrInvalidConfig, "round robin needs at least two teams, got %d", len(teamIDs))
	}
	ids := append([]string(nil), teamIDs...)
	if len(ids)%2 == 1 {
		ids = append(ids, bye)
	}
	n := len(ids)
	single := n - 1
	span := endDay - startDay
	if span < single {
		return nil, domain.Errorf(domain.ErrInvalidConfig,
			"%d rounds do not fit in %d days", single, span)
	}
	rounds := single
	if span >= 2*single {
		rounds = 2 * single
	}

	var fixtures []tournaments.Fixture
	rot := append([]string(nil), ids...)
	for r := 0; r < rounds; r++ {
		day := startDay + r*span/rounds
		slot := 0
		for i := 0; i < n/2; i++ {
			a, b := rot[i], rot[n-1-i]
			if a == bye || b == bye {
				continue
			}
			// Alternate home side by round and flip for the return leg.
			if (r%single)%2 == 1 {
				a, b = b, a
			}
			if r >= single {
				a, b = b, a
			}
			fixtures = append(fixtures, tournaments.Fixture{
				ID:     fmt.Sprintf("%s-r%02d-%d", prefix, r+1, slot),
				Day:    day,
				TeamA:  a,
				TeamB:  b,
				BestOf: bestOf,
				Stage:  tournaments.StageGroup,
				Slot:   slot,
			})
			slot++
		}
		if (r+1)%single == 0 {
			copy(rot, ids)
			continue
		}
		rot = rotate(rot)
	}
	if err := ValidateSchedule(fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

// rotate keeps the first element fixed and turns the rest clockwise.
func rotate(ids []string) []string {
	n := len(ids)
	out := make([]string, n)
	out[0] = ids[0]
	out[1] = ids[n-1]
	copy(out[2:], ids[1:n-1])
	return out
}

// ValidateSchedule rejects fixtures that book a team twice on one day.
func ValidateSchedule(fixtures []tournaments.Fixture) error {
	booked := make(map[int]map[string]string)
	for _, f := range fixtures {
		day, ok := booked[f.Day]
		if !ok {
			day = make(map[string]string)
			booked[f.Day] = day
		}
		for _, id := range []string{f.TeamA, f.TeamB} {
			if prev, ok := day[id]; ok {
				return domain.Errorf(domain.ErrDoubleBooked, "team %s plays %s and %s on day %d", id, prev, f.ID, f.Day)
			}
			day[id] = f.ID
		}
	}
	return nil
}

// Merge validates fixtures from several tournaments against each other.
func Merge(sets ...[]tournaments.Fixture) ([]tournaments.Fixture, error) {
	var all []tournaments.Fixture
	for _, s := range sets {
		all = append(all, s...)
	}
	if err := ValidateSchedule(all); err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Day != all[j].Day {
			return all[i].Day < all[j].Day
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}
