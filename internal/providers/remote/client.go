package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/esports-sim/internal/providers"
)

// Config controls how the client reaches a data pack host.
type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches a JSON data pack over HTTP and maps it to the generator's input.
type Client struct {
	url        string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a remote data pack client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:        normalizeURL(cfg.URL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchDataPack downloads and validates the pack. Malformed packs are permanent failures.
func (c *Client) FetchDataPack(ctx context.Context) (providers.DataPack, error) {
	if c.url == "" {
		return providers.DataPack{}, providers.ErrProviderUnavailable
	}
	req, err := c.buildRequest(ctx)
	if err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.DataPack{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return providers.DataPack{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "data pack host rate limited",
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("remote: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return providers.DataPack{}, &providers.PermanentError{Err: err}
		}
		return providers.DataPack{}, err
	}

	var payload packResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPackBytes)).Decode(&payload); err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: fmt.Errorf("remote: decode pack: %w", err)}
	}

	pack := mapPack(payload.Data, payload.Meta.Version)
	if err := pack.Validate(); err != nil {
		return providers.DataPack{}, &providers.PermanentError{Err: err}
	}
	return pack, nil
}

func (c *Client) buildRequest(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}
