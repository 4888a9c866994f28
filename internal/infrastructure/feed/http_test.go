package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/domain/rates"
)

func TestFetchCurrentPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"quotes": [
			{"metalType": "gold", "purity": "24K", "ratePerGram": "6512.50"},
			{"metalType": "silver", "purity": "999", "ratePerGram": "88.20"}
		]}`))
	}))
	defer srv.Close()

	f := NewHTTPFeed(srv.URL, WithAPIKey("test-key"))

	quotes, err := f.FetchCurrentPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, rates.MetalGold, quotes[0].MetalType)
	assert.Equal(t, "24K", quotes[0].Purity)
	assert.Equal(t, "6512.5", quotes[0].RatePerGram.String())
}

func TestFetchCurrentPricesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewHTTPFeed(srv.URL)

	_, err := f.FetchCurrentPrices(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))
}

func TestFetchCurrentPricesBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	f := NewHTTPFeed(srv.URL)

	_, err := f.FetchCurrentPrices(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))
}

func TestFetchCurrentPricesEmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"quotes": []}`))
	}))
	defer srv.Close()

	f := NewHTTPFeed(srv.URL)

	_, err := f.FetchCurrentPrices(context.Background())
	require.Error(t, err)
	assert.True(t, apperror.IsUpstreamUnavailable(err))
}

func TestStaticFeed(t *testing.T) {
	quotes, err := DefaultStaticFeed().FetchCurrentPrices(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, quotes)

	for _, q := range quotes {
		assert.True(t, q.MetalType.IsValid())
		assert.True(t, q.RatePerGram.IsPositive())
	}
}
