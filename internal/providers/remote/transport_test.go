package remote

import (
	"net/http"
	"testing"
	"time"
)

func TestNormalizeURLTrimsTrailingSlash(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"https://packs.example.com/", "https://packs.example.com"},
		{" https://packs.example.com ", "https://packs.example.com"},
	}
	for _, c := range cases {
		if got := normalizeURL(c.input); got != c.expected {
			t.Fatalf("expected %s, got %s", c.expected, got)
		}
	}
}

func TestResolveHTTPClientDefaultsTimeout(t *testing.T) {
	client := resolveHTTPClient(nil, 0)
	httpClient, ok := client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client)
	}
	if httpClient.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected timeout %s, got %s", defaultHTTPTimeout, httpClient.Timeout)
	}
	if got := resolveHTTPClient(nil, time.Second).(*http.Client).Timeout; got != time.Second {
		t.Fatalf("expected configured timeout, got %s", got)
	}
}

func TestResolveHTTPClientUsesProvidedClient(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	if resolveHTTPClient(custom, time.Second) != custom {
		t.Fatalf("expected provided client to be used")
	}
}

func TestParseRetryAfter(t *testing.T) {
	cases := map[string]time.Duration{
		"":      0,
		"5":     5 * time.Second,
		"-1":    0,
		"later": 0,
	}
	for raw, want := range cases {
		h := http.Header{}
		if raw != "" {
			h.Set("Retry-After", raw)
		}
		if got := parseRetryAfter(h); got != want {
			t.Fatalf("Retry-After %q: expected %s, got %s", raw, want, got)
		}
	}
}

func TestAttackBiasClamps(t *testing.T) {
	cases := map[float64]float64{
		0:  0,
		50: 0,
		90: maxAttackBias,
		5:  -maxAttackBias,
	}
	for rate, want := range cases {
		if got := attackBias(rate); got != want {
			t.Fatalf("rate %v: expected %v, got %v", rate, want, got)
		}
	}
}

func TestMapIDSlugs(t *testing.T) {
	if got := mapID("  Dust   II "); got != "dust-ii" {
		t.Fatalf("unexpected slug %q", got)
	}
}
