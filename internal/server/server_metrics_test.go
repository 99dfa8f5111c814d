package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/preston-bernstein/esports-sim/internal/config"
	"github.com/preston-bernstein/esports-sim/internal/metrics"
	"github.com/preston-bernstein/esports-sim/internal/testutil"
)

// metricsSetupSuccess forces a handler so buildMetrics takes its success path.
func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	rec := metrics.NewRecorder()
	return rec, http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, &testutil.PackProvider{}, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledSkipsSetup(t *testing.T) {
	srv, err := newServerWithMetrics(context.Background(), testConfig(t), nil, &testutil.PackProvider{}, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	cfg := testConfig(t)
	cfg.Metrics = config.MetricsConfig{Enabled: true}

	srv, err := newServerWithMetrics(context.Background(), cfg, nil, &testutil.PackProvider{}, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no shutdown hook for an injected recorder")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected injected shutdown to succeed, got %v", err)
	}
}

func TestRecorderSeesDaySteps(t *testing.T) {
	rec := metrics.NewRecorder()
	srv, err := newServerWithMetrics(context.Background(), testConfig(t), nil, &testutil.PackProvider{}, rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := srv.Orchestrator().AdvanceOneDay(context.Background()); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if got := rec.Sim().Days; got != 3 {
		t.Fatalf("expected 3 recorded days, got %d", got)
	}
}
