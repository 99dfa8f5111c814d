package season

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/esports-sim/internal/domain"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
	"github.com/preston-bernstein/esports-sim/internal/economy"
	"github.com/preston-bernstein/esports-sim/internal/generator"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/store"
	"github.com/preston-bernstein/esports-sim/internal/tournament"
)

// StartNewSeason opens season number. An empty world is populated from the
// generator first: teams, rosters, budgets, and contracts. The league and
// its round-robin schedule are built immediately; playoffs are seeded when
// the regular season ends.
func (o *Orchestrator) StartNewSeason(ctx context.Context, number, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	startDay := 0
	if prev := o.store.Season(); prev.LengthDays > 0 {
		startDay = prev.StartDay + prev.LengthDays
	}
	if len(o.store.Teams()) == 0 {
		if err := o.seedWorld(ctx, startDay); err != nil {
			return err
		}
	}
	return o.beginSeason(ctx, number, year, startDay)
}

// seedWorld draws the league and signs every generated player.
func (o *Orchestrator) seedWorld(ctx context.Context, day int) error {
	league, roster := o.gen.League(o.cfg.TeamCount)
	o.store.Apply(store.Batch{Teams: league, Players: roster})

	for _, t := range league {
		if _, err := o.economy.InitializeBudget(t.ID, o.cfg.StartingBudget, day); err != nil {
			return fmt.Errorf("initialize budget for %s: %w", t.Name, err)
		}
	}

	// Signing reassigns roster slots, so clear them and let contracts fill
	// the roster strongest first.
	byTeam := make(map[string][]players.Player)
	for _, p := range roster {
		for _, t := range league {
			if t.HasPlayer(p.ID) {
				byTeam[t.ID] = append(byTeam[t.ID], p)
			}
		}
	}
	cleared := make([]teams.Team, len(league))
	for i, t := range league {
		t.Roster, t.Bench, t.Roles = nil, nil, nil
		cleared[i] = t
	}
	o.store.Apply(store.Batch{Teams: cleared})

	for _, t := range league {
		for _, p := range strongestFirst(byTeam[t.ID]) {
			o.sign(ctx, p, t.ID, day)
		}
		o.refreshRoles(t.ID)
	}
	logging.Info(o.log(ctx), "world generated",
		logging.FieldCount, len(league),
		"players", len(roster),
		"pack", o.pack.Name,
	)
	return nil
}

// sign offers the player a standard contract at the suggested wage.
func (o *Orchestrator) sign(ctx context.Context, p players.Player, teamID string, day int) bool {
	salary := economy.SuggestedSalary(economy.MarketValue(p, o.cfg.Economy), o.cfg.Economy)
	return o.signOn(ctx, p, teamID, day, salary, o.cfg.ContractMonths)
}

func (o *Orchestrator) signOn(ctx context.Context, p players.Player, teamID string, day int, salary decimal.Decimal, months int) bool {
	_, err := o.economy.SignContract(economy.SignRequest{
		PlayerID:      p.ID,
		TeamID:        teamID,
		MonthlySalary: salary,
		Months:        months,
		Day:           day,
	})
	if err != nil {
		o.budgetRejected(ctx, "sign", err, logging.FieldPlayerID, p.ID, logging.FieldTeamID, teamID)
		return false
	}
	return true
}

// refreshRoles reassigns roles over the team's current active roster.
func (o *Orchestrator) refreshRoles(teamID string) {
	t, ok := o.store.Team(teamID)
	if !ok {
		return
	}
	pool := make([]players.Player, 0, len(t.Roster))
	for _, id := range t.Roster {
		if p, ok := o.store.Player(id); ok {
			pool = append(pool, p)
		}
	}
	generator.AssignRoles(&t, pool)
	o.store.Apply(store.Batch{Teams: []teams.Team{t}})
}

func (o *Orchestrator) beginSeason(ctx context.Context, number, year, startDay int) error {
	length := o.cfg.LengthDays
	ids := make([]string, 0, o.cfg.TeamCount)
	for _, t := range o.store.Teams() {
		ids = append(ids, t.ID)
	}

	leagueStart := startDay + seasons.PhaseStart(seasons.PhaseRegularSeason, length)
	leagueEnd := startDay + seasons.PhaseStart(seasons.PhasePlayoffs, length)
	league, err := tournament.NewLeague(
		fmt.Sprintf("s%d-league", number),
		fmt.Sprintf("Season %d League", number),
		ids, leagueStart, leagueEnd, o.cfg.LeaguePrizePool,
	)
	if err != nil {
		return err
	}

	s := seasons.Season{
		Number:     number,
		Year:       year,
		StartDay:   startDay,
		LengthDays: length,
		LeagueID:   league.ID,
	}
	o.store.Apply(store.Batch{Season: &s, Tournaments: []tournaments.Tournament{league}})
	o.fillRosters(ctx, startDay)

	logging.Info(o.log(ctx), "season started",
		logging.FieldSeason, number,
		logging.FieldDay, startDay,
		logging.FieldCount, len(league.Fixtures),
	)
	return nil
}

// seedPlayoffs builds the bracket from the final league table.
func (o *Orchestrator) seedPlayoffs(ctx context.Context, s seasons.Season) (seasons.Season, error) {
	league, ok := o.store.Tournament(s.LeagueID)
	if !ok {
		return s, domain.Errorf(domain.ErrInvalidArgument, "league %s missing", s.LeagueID)
	}
	seeds := tournament.Seeds(league, tournament.BracketSize(len(league.TeamIDs)))
	start := s.StartDay + seasons.PhaseStart(seasons.PhasePlayoffs, s.LengthDays)
	end := s.StartDay + seasons.PhaseStart(seasons.PhaseOffseason, s.LengthDays)
	playoffs, err := tournament.NewPlayoffs(
		fmt.Sprintf("s%d-playoffs", s.Number),
		fmt.Sprintf("Season %d Playoffs", s.Number),
		seeds, start, end, o.cfg.PlayoffPrizePool,
	)
	if err != nil {
		return s, err
	}
	s.PlayoffsID = playoffs.ID
	o.store.Apply(store.Batch{Season: &s, Tournaments: []tournaments.Tournament{playoffs}})
	logging.Info(o.log(ctx), "playoffs seeded",
		logging.FieldSeason, s.Number,
		logging.FieldCount, len(seeds),
	)
	return s, nil
}

// rollover ages every player, retires the old, takes one prospect per team,
// and opens the next season.
func (o *Orchestrator) rollover(ctx context.Context, ended seasons.Season) error {
	day := ended.StartDay + ended.LengthDays
	retired := 0
	for _, p := range o.store.Players() {
		if p.IsRetired() {
			continue
		}
		if !o.dev.AgeOneYear(&p, day) {
			p.MarketValue = economy.MarketValue(p, o.cfg.Economy)
			o.store.Apply(store.Batch{Players: []players.Player{p}})
			continue
		}
		retired++
		o.store.Apply(store.Batch{Players: []players.Player{p}})
		if _, err := o.economy.RetireContract(p.ID, day); err != nil && !domain.IsKind(err, domain.KindStateConflict) {
			logging.Error(o.log(ctx), "retirement release failed", err, logging.FieldPlayerID, p.ID)
		}
		if p.TeamID != "" {
			if t, ok := o.store.Team(p.TeamID); ok && t.HasPlayer(p.ID) {
				t.RemovePlayer(p.ID)
				t.PromoteFromBench()
				o.store.Apply(store.Batch{Teams: []teams.Team{t}})
			}
		}
	}

	for _, t := range o.store.Teams() {
		prospect := o.gen.Prospect()
		prospect.MarketValue = economy.MarketValue(prospect, o.cfg.Economy)
		o.store.Apply(store.Batch{Players: []players.Player{prospect}})
		o.sign(ctx, prospect, t.ID, day)
	}

	o.store.ClearSeries()
	logging.Info(o.log(ctx), "season ended",
		logging.FieldSeason, ended.Number,
		"retired", retired,
	)
	return o.beginSeason(ctx, ended.Number+1, ended.Year+1, day)
}

// sponsor credits every team's monthly sponsorship.
func (o *Orchestrator) sponsor(ctx context.Context, day int) {
	if !o.cfg.MonthlySponsorship.IsPositive() {
		return
	}
	for _, t := range o.store.Teams() {
		if err := o.economy.AddSponsorshipIncome(t.ID, o.cfg.MonthlySponsorship, day); err != nil {
			logging.Error(o.log(ctx), "sponsorship failed", err, logging.FieldTeamID, t.ID)
		}
	}
}

// payPrizes credits a completed tournament's placements once and rewards
// the champion's roster.
func (o *Orchestrator) payPrizes(ctx context.Context, t *tournaments.Tournament, day int) {
	if t.PrizesPaid || !t.IsComplete() {
		return
	}
	for _, p := range tournament.Prizes(*t) {
		desc := fmt.Sprintf("%s: place %d", t.Name, p.Place)
		if err := o.economy.AddPrizeMoney(p.TeamID, p.Amount, desc, day); err != nil {
			logging.Error(o.log(ctx), "prize payout failed", err, logging.FieldTeamID, p.TeamID)
			continue
		}
		logging.Info(o.log(ctx), "prize paid",
			logging.FieldTeamID, p.TeamID,
			logging.FieldAmount, p.Amount.StringFixed(2),
			"place", p.Place,
		)
	}
	t.PrizesPaid = true

	champ, ok := o.store.Team(t.ChampionID)
	if !ok {
		return
	}
	var awarded []players.Player
	for _, id := range champ.Roster {
		p, ok := o.store.Player(id)
		if !ok {
			continue
		}
		o.dev.AwardAchievement(&p, t.Name+" champion", day)
		p.AddEvent(day, players.EventChampionship, t.Name)
		awarded = append(awarded, p)
	}
	o.store.Apply(store.Batch{Players: awarded})
}
