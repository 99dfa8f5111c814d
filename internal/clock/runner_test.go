package clock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/esports-sim/internal/season"
	"github.com/preston-bernstein/esports-sim/internal/testutil"
)

type stubStepper struct {
	mu        sync.Mutex
	err       error
	saveErr   error
	day       int
	steps     atomic.Int32
	autosaves atomic.Int32
	notify    chan struct{}
}

func (s *stubStepper) AdvanceOneDay(ctx context.Context) (season.DayReport, error) {
	s.mu.Lock()
	err := s.err
	day := s.day
	s.day++
	s.mu.Unlock()

	s.steps.Add(1)
	if s.notify != nil {
		select {
		case s.notify <- struct{}{}:
		default:
		}
	}
	if err != nil {
		return season.DayReport{}, err
	}
	return season.DayReport{Season: 1, Day: day}, nil
}

func (s *stubStepper) Autosave(ctx context.Context) (string, error) {
	s.autosaves.Add(1)
	if s.saveErr != nil {
		return "", s.saveErr
	}
	return "autosave.json", nil
}

func TestRunnerStepsOnEachTick(t *testing.T) {
	stepper := &stubStepper{notify: make(chan struct{}, 1)}
	r := New(stepper, nil, 5*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	select {
	case <-stepper.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for first step")
	}
	_ = r.Stop(context.Background())

	if stepper.steps.Load() < 1 {
		t.Fatalf("expected at least one step")
	}
}

func TestRunnerStopsOnContextCancel(t *testing.T) {
	stepper := &stubStepper{notify: make(chan struct{}, 1)}
	r := New(stepper, nil, 5*time.Millisecond, 0)
	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)

	select {
	case <-stepper.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for first step")
	}
	cancel()
	_ = r.Stop(context.Background())
	time.Sleep(10 * time.Millisecond)

	before := stepper.steps.Load()
	time.Sleep(20 * time.Millisecond)
	if after := stepper.steps.Load(); after != before {
		t.Fatalf("expected no steps after stop; before=%d after=%d", before, after)
	}
}

func TestRunnerStartAndStopAreIdempotent(t *testing.T) {
	r := New(&stubStepper{}, nil, time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx)
	r.Start(ctx)
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}

func TestRunnerDefaultsInterval(t *testing.T) {
	r := New(&stubStepper{}, nil, 0, 0)
	if r.Interval() != defaultInterval {
		t.Fatalf("expected default interval %s, got %s", defaultInterval, r.Interval())
	}
}

func TestRunnerStatusTracksFailuresAndSuccess(t *testing.T) {
	stepper := &stubStepper{err: errors.New("boom")}
	logger, buf := testutil.NewBufferLogger()
	r := New(stepper, logger, time.Hour, 0)
	at := testutil.MustParseRFC3339("2026-03-01T12:00:00Z")
	r.now = testutil.NowAt(at)

	r.tick(context.Background())
	status := r.Status()
	if !status.LastAttempt.Equal(at) || !status.LastSuccess.IsZero() {
		t.Fatalf("expected attempt stamped at %v and no success, got %+v", at, status)
	}
	if status.ConsecutiveFailures != 1 || status.LastError == "" {
		t.Fatalf("expected one recorded failure, got %+v", status)
	}
	if status.IsReady() {
		t.Fatalf("expected not ready after failure")
	}
	if buf.Len() == 0 {
		t.Fatalf("expected failure to be logged")
	}

	stepper.mu.Lock()
	stepper.err = nil
	stepper.mu.Unlock()
	r.tick(context.Background())
	status = r.Status()
	if status.ConsecutiveFailures != 0 || !status.LastSuccess.Equal(at) {
		t.Fatalf("expected success to reset failures, got %+v", status)
	}
	if status.DaysAdvanced != 1 || status.Season != 1 {
		t.Fatalf("unexpected progress %+v", status)
	}
	if !status.IsReady() {
		t.Fatalf("expected ready after success")
	}
}

func TestRunnerNotReadyAfterRepeatedFailures(t *testing.T) {
	stepper := &stubStepper{}
	r := New(stepper, nil, time.Hour, 0)
	r.tick(context.Background())

	stepper.mu.Lock()
	stepper.err = errors.New("down")
	stepper.mu.Unlock()
	for i := 0; i < 3; i++ {
		r.tick(context.Background())
	}
	if r.Status().IsReady() {
		t.Fatalf("expected not ready after three failures")
	}
}

func TestRunnerAutosavesEveryNDays(t *testing.T) {
	stepper := &stubStepper{}
	r := New(stepper, nil, time.Hour, 3)
	for i := 0; i < 7; i++ {
		r.tick(context.Background())
	}
	if got := stepper.autosaves.Load(); got != 2 {
		t.Fatalf("expected 2 autosaves in 7 days, got %d", got)
	}
	if r.Status().LastAutosave != "autosave.json" {
		t.Fatalf("expected last autosave path recorded")
	}
}

func TestRunnerAutosaveFailureKeepsRunning(t *testing.T) {
	stepper := &stubStepper{saveErr: errors.New("disk full")}
	r := New(stepper, nil, time.Hour, 1)
	r.tick(context.Background())
	r.tick(context.Background())

	status := r.Status()
	if status.DaysAdvanced != 2 || status.ConsecutiveFailures != 0 {
		t.Fatalf("autosave failure should not count as a step failure: %+v", status)
	}
	if status.LastAutosave != "" {
		t.Fatalf("expected no autosave path, got %q", status.LastAutosave)
	}
}
