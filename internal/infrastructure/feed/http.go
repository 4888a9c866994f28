// Package feed provides price feed clients for the rate ledger.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/domain/rates"
)

const defaultRequestTimeout = 10 * time.Second

// HTTPFeed fetches market prices from a JSON endpoint.
//
// Expected response body:
//
//	{"quotes": [{"metalType": "gold", "purity": "24K", "ratePerGram": "6512.50"}]}
type HTTPFeed struct {
	url    string
	apiKey string
	client *http.Client
}

// HTTPFeedOption configures an HTTPFeed.
type HTTPFeedOption func(*HTTPFeed)

// WithAPIKey sets the bearer token sent with each request.
func WithAPIKey(key string) HTTPFeedOption {
	return func(f *HTTPFeed) { f.apiKey = key }
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPFeedOption {
	return func(f *HTTPFeed) { f.client = c }
}

// NewHTTPFeed creates a feed client for the given endpoint URL.
func NewHTTPFeed(url string, opts ...HTTPFeedOption) *HTTPFeed {
	f := &HTTPFeed{
		url:    url,
		client: &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type feedResponse struct {
	Quotes []rates.Quote `json:"quotes"`
}

// FetchCurrentPrices requests the current quote list.
func (f *HTTPFeed) FetchCurrentPrices(ctx context.Context) ([]rates.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperror.NewUpstreamUnavailable("price_feed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, apperror.NewUpstreamUnavailable("price_feed",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperror.NewUpstreamUnavailable("price_feed",
			fmt.Errorf("decode response: %w", err))
	}

	if len(body.Quotes) == 0 {
		return nil, apperror.NewUpstreamUnavailable("price_feed",
			fmt.Errorf("empty quote list"))
	}

	return body.Quotes, nil
}

var _ rates.PriceFeed = (*HTTPFeed)(nil)
