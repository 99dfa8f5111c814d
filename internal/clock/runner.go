// Package clock drives the season forward on a wall-clock interval.
package clock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/season"
)

const defaultInterval = 5 * time.Second

// Stepper advances the world one day and writes autosaves.
type Stepper interface {
	AdvanceOneDay(ctx context.Context) (season.DayReport, error)
	Autosave(ctx context.Context) (string, error)
}

// Runner advances one simulated day per tick and autosaves every N days.
type Runner struct {
	stepper       Stepper
	logger        *slog.Logger
	interval      time.Duration
	autosaveEvery int
	now           func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the clock loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	DaysAdvanced        int
	Season              int
	Day                 int
	LastAutosave        string
}

// IsReady reports whether the clock has stepped recently and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Runner. autosaveEvery <= 0 disables autosaves.
func New(stepper Stepper, logger *slog.Logger, interval time.Duration, autosaveEvery int) *Runner {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Runner{
		stepper:       stepper,
		logger:        logger,
		interval:      interval,
		autosaveEvery: autosaveEvery,
		now:           time.Now,
		done:          make(chan struct{}),
	}
}

// Interval is the wall-clock time between day steps.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Start begins ticking until the context is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		logging.Info(r.logger, "clock started", logging.FieldDurationMS, r.interval.Milliseconds())
		for {
			select {
			case <-ctx.Done():
				r.stopTicker()
				logging.Info(r.logger, "clock stopped")
				return
			case <-r.done:
				r.stopTicker()
				logging.Info(r.logger, "clock stopped")
				return
			case <-r.ticker.C:
				r.tick(ctx)
			}
		}
	}()
}

// Stop halts the loop. It is safe to call more than once.
func (r *Runner) Stop(ctx context.Context) error {
	_ = ctx
	r.stopOnce.Do(func() {
		close(r.done)
		r.stopTicker()
	})
	return nil
}

func (r *Runner) tick(ctx context.Context) {
	start := r.now()
	r.recordAttempt(start)
	report, err := r.stepper.AdvanceOneDay(ctx)
	if err != nil {
		logging.Error(r.logger, "clock step failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		r.recordFailure(err, start)
		return
	}
	days := r.recordSuccess(report, start)
	if report.SeasonEnded {
		logging.Info(r.logger, "season rolled over", logging.FieldSeason, report.Season)
	}

	if r.autosaveEvery > 0 && days%r.autosaveEvery == 0 {
		path, err := r.stepper.Autosave(ctx)
		if err != nil {
			logging.Error(r.logger, "clock autosave failed", err)
			return
		}
		r.statusMu.Lock()
		r.status.LastAutosave = path
		r.statusMu.Unlock()
	}
}

func (r *Runner) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
}

func (r *Runner) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Runner) recordSuccess(report season.DayReport, at time.Time) int {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
	r.status.DaysAdvanced++
	r.status.Season = report.Season
	r.status.Day = report.Day
	return r.status.DaysAdvanced
}

func (r *Runner) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the clock's recent health.
func (r *Runner) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
