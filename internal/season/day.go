package season

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/esports-sim/internal/domain/contracts"
	"github.com/preston-bernstein/esports-sim/internal/domain/matches"
	"github.com/preston-bernstein/esports-sim/internal/domain/players"
	"github.com/preston-bernstein/esports-sim/internal/domain/seasons"
	"github.com/preston-bernstein/esports-sim/internal/domain/teams"
	"github.com/preston-bernstein/esports-sim/internal/domain/tournaments"
	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/random"
	"github.com/preston-bernstein/esports-sim/internal/simulation"
	"github.com/preston-bernstein/esports-sim/internal/store"
	"github.com/preston-bernstein/esports-sim/internal/tournament"
)

// DayReport summarizes one day step.
type DayReport struct {
	Season          int           `json:"season"`
	Day             int           `json:"day"`
	Phase           seasons.Phase `json:"phase"`
	Series          int           `json:"series"`
	Maps            int           `json:"maps"`
	Forfeits        int           `json:"forfeits"`
	Events          int           `json:"events"`
	ExpiredDeals    int           `json:"expiredDeals"`
	ExpiredListings int           `json:"expiredListings"`
	SalariesPaid    int           `json:"salariesPaid"`
	Transfers       int           `json:"transfers"`
	SeasonEnded     bool          `json:"seasonEnded"`
}

// fixtureJob is one fixture prepared for play. Lineups and the random
// source are fixed before any goroutine starts.
type fixtureJob struct {
	tournamentID string
	fixture      tournaments.Fixture
	a, b         simulation.Lineup
	src          random.Source
	forfeit      string // winner by forfeit, empty when played
}

// AdvanceOneDay runs one simulated day. A cancelled context is refused
// before any state changes. Budget failures inside the step are logged and
// counted; they never fail the day.
func (o *Orchestrator) AdvanceOneDay(ctx context.Context) (DayReport, error) {
	if err := ctx.Err(); err != nil {
		return DayReport{}, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	report, err := o.step(ctx)
	o.metrics.RecordDay(time.Since(start), err)
	if err != nil {
		logging.Error(o.log(ctx), "day step failed", err, logging.FieldDay, report.Day)
		return report, err
	}
	return report, nil
}

// AdvanceOneWeek runs seven day steps, stopping at the first error.
func (o *Orchestrator) AdvanceOneWeek(ctx context.Context) ([]DayReport, error) {
	return o.advance(ctx, 7)
}

// AdvanceOneMonth runs thirty day steps, stopping at the first error.
func (o *Orchestrator) AdvanceOneMonth(ctx context.Context) ([]DayReport, error) {
	return o.advance(ctx, contracts.DaysPerMonth)
}

func (o *Orchestrator) advance(ctx context.Context, days int) ([]DayReport, error) {
	out := make([]DayReport, 0, days)
	for i := 0; i < days; i++ {
		r, err := o.AdvanceOneDay(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (o *Orchestrator) step(ctx context.Context) (DayReport, error) {
	s := o.store.Season()
	if s.LengthDays <= 0 {
		return DayReport{}, ErrNoSeason
	}
	day := s.Day()
	report := DayReport{Season: s.Number, Day: day}

	if s.Phase() == seasons.PhasePlayoffs && s.PlayoffsID == "" {
		var err error
		if s, err = o.seedPlayoffs(ctx, s); err != nil {
			return report, err
		}
	}

	jobs := o.prepareFixtures(s, day)
	played, err := o.playFixtures(ctx, jobs)
	if err != nil {
		return report, err
	}
	for i, job := range jobs {
		o.applySeries(ctx, s, job, played[i], day)
		report.Series++
		report.Maps += len(played[i].Maps)
		if job.forfeit != "" {
			report.Forfeits++
		}
	}
	if len(jobs) > 0 {
		all := o.store.Teams()
		ranked := tournament.Rankings(all, o.store.Rankings())
		o.store.Apply(store.Batch{Teams: all, Rankings: ranked})
	}

	o.developPlayers(day)
	report.Events = o.dailyEvents(ctx, day)
	o.growChemistry()

	expired, soon := o.economy.ProcessExpirations(day)
	for _, c := range expired {
		logging.Info(o.log(ctx), "contract expired",
			logging.FieldContractID, c.ID,
			logging.FieldPlayerID, c.PlayerID,
			logging.FieldTeamID, c.TeamID,
		)
	}
	if len(soon) > 0 {
		logging.Info(o.log(ctx), "contracts expiring soon", logging.FieldCount, len(soon), logging.FieldDay, day)
	}
	report.ExpiredDeals = len(expired)
	report.ExpiredListings = len(o.economy.CheckExpiredListings(day))

	if (s.DaysPassed+1)%contracts.DaysPerMonth == 0 {
		n, total := o.economy.ProcessMonthlySalaries(day)
		report.SalariesPaid = n
		o.sponsor(ctx, day)
		o.listSurplus(ctx, day)
		logging.Info(o.log(ctx), "salaries paid",
			logging.FieldDay, day,
			logging.FieldCount, n,
			logging.FieldAmount, total.StringFixed(2),
		)
	}

	report.Transfers = o.runMarket(ctx, day)
	o.fillRosters(ctx, day)

	s.DaysPassed++
	o.store.Apply(store.Batch{Season: &s})
	o.daysSimulated++
	report.Phase = s.Phase()

	if s.Complete() {
		report.SeasonEnded = true
		if err := o.rollover(ctx, s); err != nil {
			return report, err
		}
	}
	return report, nil
}

// prepareFixtures snapshots lineups and draws one derived source per
// fixture, in fixture order, from the master source.
func (o *Orchestrator) prepareFixtures(s seasons.Season, day int) []fixtureJob {
	var jobs []fixtureJob
	for _, id := range []string{s.LeagueID, s.PlayoffsID} {
		if id == "" {
			continue
		}
		t, ok := o.store.Tournament(id)
		if !ok {
			continue
		}
		for _, f := range t.FixturesOn(day) {
			job := fixtureJob{tournamentID: t.ID, fixture: f, src: random.Derive(o.src)}
			a, okA := o.lineup(f.TeamA)
			b, okB := o.lineup(f.TeamB)
			switch {
			case okA && okB:
				job.a, job.b = a, b
			case okA:
				job.forfeit = f.TeamA
			case okB:
				job.forfeit = f.TeamB
			default:
				// Neither side can field five; the listed home side advances.
				job.forfeit = f.TeamA
			}
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// lineup fields the active roster, swapping injured starters for healthy
// bench players for this match only.
func (o *Orchestrator) lineup(teamID string) (simulation.Lineup, bool) {
	t, ok := o.store.Team(teamID)
	if !ok {
		return simulation.Lineup{}, false
	}
	t.PromoteFromBench()
	if t.ValidateLineup() != nil {
		return simulation.Lineup{}, false
	}

	var healthyBench []players.Player
	for _, id := range t.Bench {
		if p, ok := o.store.Player(id); ok && !p.IsInjured() && !p.IsRetired() {
			healthyBench = append(healthyBench, p)
		}
	}
	roster := make([]players.Player, 0, teams.RosterSize)
	for _, id := range t.Roster {
		p, ok := o.store.Player(id)
		if !ok {
			return simulation.Lineup{}, false
		}
		if p.IsInjured() && len(healthyBench) > 0 {
			p, healthyBench = healthyBench[0], healthyBench[1:]
		}
		roster = append(roster, p)
	}
	return simulation.NewLineup(t, roster), true
}

// playFixtures simulates every job concurrently. Each job has its own
// engine and source, so results do not depend on scheduling.
func (o *Orchestrator) playFixtures(ctx context.Context, jobs []fixtureJob) ([]matches.Series, error) {
	out := make([]matches.Series, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range jobs {
		job := jobs[i]
		if job.forfeit != "" {
			out[i] = matches.Series{
				ID:       random.UUID(job.src),
				TeamA:    job.fixture.TeamA,
				TeamB:    job.fixture.TeamB,
				BestOf:   job.fixture.BestOf,
				Day:      job.fixture.Day,
				WinnerID: job.forfeit,
			}
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			eng := simulation.New(o.cfg.Simulation, job.src)
			s, err := eng.SimulateSeries(job.a, job.b, o.pack.Maps, job.fixture.BestOf, o.cfg.MaxRounds)
			if err != nil {
				return err
			}
			s.Day = job.fixture.Day
			for m := range s.Maps {
				s.Maps[m].Day = job.fixture.Day
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// applySeries folds one result into players, teams, the tournament, the
// archive, and metrics. It runs serially in fixture order.
func (o *Orchestrator) applySeries(ctx context.Context, s seasons.Season, job fixtureJob, series matches.Series, day int) {
	touched := make(map[string]players.Player)
	teamA, _ := o.store.Team(series.TeamA)
	teamB, _ := o.store.Team(series.TeamB)

	for _, m := range series.Maps {
		o.metrics.RecordMatch(m.RoundsPlayed, m.OvertimeBlocks > 0 || m.SuddenDeath)
		for _, perf := range m.Performances {
			p, ok := touched[perf.PlayerID]
			if !ok {
				if p, ok = o.store.Player(perf.PlayerID); !ok {
					continue
				}
			}
			o.dev.RecordMatchPerformance(&p, perf, m.MapID)
			touched[p.ID] = p
		}
		recordMap(&teamA, m)
		recordMap(&teamB, m)
		if err := o.archive.Record(ctx, s.Number, m); err != nil {
			logging.Warn(o.log(ctx), "archive write failed", logging.FieldMatchID, m.ID, "err", err)
		}
	}
	tournament.ApplySeries(&teamA, &teamB, series.WinnerID)

	batch := store.Batch{
		Teams:  []teams.Team{teamA, teamB},
		Series: []matches.Series{series},
	}
	for _, p := range touched {
		batch.Players = append(batch.Players, p)
	}
	o.store.Apply(batch)

	t, ok := o.store.Tournament(job.tournamentID)
	if !ok {
		return
	}
	if err := tournament.RecordSeries(&t, job.fixture.ID, series); err != nil {
		logging.Error(o.log(ctx), "record series failed", err, logging.FieldMatchID, series.ID)
		return
	}
	o.payPrizes(ctx, &t, day)
	o.store.Apply(store.Batch{Tournaments: []tournaments.Tournament{t}})

	logging.Info(o.log(ctx), "series played",
		logging.FieldDay, day,
		logging.FieldMatchID, series.ID,
		logging.FieldTeamID, series.WinnerID,
		"tournament", t.ID,
		"maps", len(series.Maps),
	)
}

// recordMap adds a map's rounds to the team's map record.
func recordMap(t *teams.Team, m matches.MatchResult) {
	if t.ID != m.TeamA && t.ID != m.TeamB {
		return
	}
	if t.MapRecords == nil {
		t.MapRecords = make(map[string]teams.MapRecord)
	}
	rec := t.MapRecords[m.MapID]
	rec.Played++
	if m.WinnerID == t.ID {
		rec.Wins++
	}
	for _, r := range m.Rounds {
		won := r.WinnerID == t.ID
		if r.AttackerID == t.ID {
			rec.AttackRoundsPlayed++
			if won {
				rec.AttackRoundsWon++
			}
			continue
		}
		rec.DefenseRoundsPlayed++
		if won {
			rec.DefenseRoundsWon++
		}
	}
	t.MapRecords[m.MapID] = rec
}
