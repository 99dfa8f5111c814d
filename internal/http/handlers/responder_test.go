package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/esports-sim/internal/logging"
	"github.com/preston-bernstein/esports-sim/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/teams/t1", nil)
	req.Header.Set("X-Request-ID", "abc123")
	logger, _ := testutil.NewBufferLogger()

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "team not found", logger)
	}), req)

	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["requestId"] != "abc123" || body["error"] != "team not found" {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, httptest.NewRequest(http.MethodGet, "/season", nil), http.StatusNotFound, "no season", nil)
	if bytes.Contains(rr.Body.Bytes(), []byte("requestId")) {
		t.Fatalf("expected no request id, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/standings", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestLoggerFromContext(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	if got := loggerFromContext(nil, fallback); got != fallback {
		t.Fatalf("expected fallback for nil request")
	}
	scoped, _ := testutil.NewBufferLogger()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req = req.WithContext(logging.WithLogger(context.Background(), scoped))
	if got := loggerFromContext(req, fallback); got != scoped {
		t.Fatalf("expected request-scoped logger")
	}
}
