package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type simStats struct {
	matches          int
	rounds           int
	overtimeMaps     int
	days             int
	dayErrors        int
	budgetRejections map[string]int
	transfers        int
	autosaves        int
	lastDayLatency   time.Duration
}

// Recorder captures lightweight, in-memory metrics about the simulation and
// data-pack providers, mirrored into OpenTelemetry when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	sim   simStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		sim:   simStats{budgetRejections: make(map[string]int)},
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordMatch counts a simulated map.
func (r *Recorder) RecordMatch(rounds int, overtime bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.matches++
	r.sim.rounds += rounds
	if overtime {
		r.sim.overtimeMaps++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordMatch(rounds, overtime)
	}
}

// RecordDay tracks one simulated day step.
func (r *Recorder) RecordDay(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.days++
	r.sim.lastDayLatency = duration
	if err != nil {
		r.sim.dayErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordDay(duration, err)
	}
}

// RecordBudgetRejection counts an economy operation refused for lack of funds.
func (r *Recorder) RecordBudgetRejection(operation string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.budgetRejections[operation]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordBudgetRejection(operation)
	}
}

// RecordTransfer counts a completed transfer.
func (r *Recorder) RecordTransfer() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.transfers++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTransfer()
	}
}

// RecordAutosave counts a written autosave.
func (r *Recorder) RecordAutosave() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.autosaves++
	r.mu.Unlock()
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// SimSnapshot is a copy of the simulation counters.
type SimSnapshot struct {
	Matches          int
	Rounds           int
	OvertimeMaps     int
	Days             int
	DayErrors        int
	BudgetRejections map[string]int
	Transfers        int
	Autosaves        int
	LastDayLatency   time.Duration
}

// Sim returns the simulation counters.
func (r *Recorder) Sim() SimSnapshot {
	if r == nil {
		return SimSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rejections := make(map[string]int, len(r.sim.budgetRejections))
	for k, v := range r.sim.budgetRejections {
		rejections[k] = v
	}
	return SimSnapshot{
		Matches:          r.sim.matches,
		Rounds:           r.sim.rounds,
		OvertimeMaps:     r.sim.overtimeMaps,
		Days:             r.sim.days,
		DayErrors:        r.sim.dayErrors,
		BudgetRejections: rejections,
		Transfers:        r.sim.transfers,
		Autosaves:        r.sim.autosaves,
		LastDayLatency:   r.sim.lastDayLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
