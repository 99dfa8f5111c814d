package season

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/store"
)

// Daily event kinds.
const (
	eventFormSwing = iota
	eventMinorInjury
	eventConfidence
)

// developPlayers runs the daily development tick for every active player.
func (o *Orchestrator) developPlayers(day int) {
	all := o.store.Players()
	batch := make([]players.Player, 0, len(all))
	for _, p := range all {
		if p.IsRetired() {
			continue
		}
		o.dev.AdvanceOneDay(&p, day)
		batch = append(batch, p)
	}
	o.store.Apply(store.Batch{Players: batch})
}

// dailyEvents rolls the daily chance of a random career event for one
// rostered player: a form swing, a minor injury, or a confidence boost.
func (o *Orchestrator) dailyEvents(ctx context.Context, day int) int {
	if !random.Chance(o.src, o.cfg.DailyEventChance) {
		return 0
	}
	all := o.store.Teams()
	if len(all) == 0 {
		return 0
	}
	t := random.Pick(o.src, all)
	if len(t.Roster) == 0 {
		return 0
	}
	p, ok := o.store.Player(random.Pick(o.src, t.Roster))
	if !ok || p.IsRetired() {
		return 0
	}

	var desc string
	switch random.Between(o.src, eventFormSwing, eventConfidence) {
	case eventFormSwing:
		delta := random.Between(o.src, -2, 2)
		p.Skills.Consistency = players.ClampSkill(p.Skills.Consistency + delta)
		desc = fmt.Sprintf("form swing, consistency %+d", delta)
		p.AddEvent(day, players.EventFormChange, desc)
	case eventMinorInjury:
		days := random.Between(o.src, 3, 7)
		o.dev.CauseInjury(&p, days, day)
		desc = fmt.Sprintf("minor injury, out %d days", days)
	default:
		boost := float64(random.Between(o.src, 5, 10))
		p.Career.Morale = players.ClampMorale(p.Career.Morale + boost)
		desc = fmt.Sprintf("confidence boost, morale +%.0f", boost)
		p.AddEvent(day, players.EventMorale, desc)
	}
	o.store.Apply(store.Batch{Players: []players.Player{p}})

	logging.Info(o.log(ctx), "career event",
		logging.FieldDay, day,
		logging.FieldPlayerID, p.ID,
		logging.FieldTeamID, t.ID,
		logging.FieldEvent, desc,
	)
	return 1
}

// growChemistry nudges chemistry up for every team that can field a full
// roster. Rosters that change lose nothing; they simply grow from where
// they are.
func (o *Orchestrator) growChemistry() {
	if o.cfg.ChemistryPerDay <= 0 {
		return
	}
	var batch []teams.Team
	for _, t := range o.store.Teams() {
		if len(t.Roster) != teams.RosterSize || t.Style.Chemistry >= 100 {
			continue
		}
		t.Style.Chemistry += o.cfg.ChemistryPerDay
		if t.Style.Chemistry > 100 {
			t.Style.Chemistry = 100
		}
		batch = append(batch, t)
	}
	o.store.Apply(store.Batch{Teams: batch})
}
