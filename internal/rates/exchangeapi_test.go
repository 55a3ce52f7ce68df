package rates

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentRate(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v6/test-key/latest/USD", r.URL.Path)
		w.Write([]byte(`{"result":"success","conversion_rates":{"PLN":4.05,"EUR":0.92}}`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.Client(), srv.URL, "test-key", 5*time.Minute)

	rate, err := client.Current("USD", "PLN")
	require.NoError(t, err)
	assert.Equal(t, "4.05", rate.Rate.String())
	assert.Equal(t, "ExchangeRate-API", rate.Source)

	// Second lookup within the TTL is served from cache.
	_, err = client.Current("USD", "PLN")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// A different pair is a different cache key.
	_, err = client.Current("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCurrentRateUnknownTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","conversion_rates":{"PLN":4.05}}`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.Client(), srv.URL, "test-key", time.Minute)
	_, err := client.Current("USD", "XXX")
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestCurrentRateUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"error result", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"error"}`))
		}},
		{"malformed payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewExchangeRateClient(srv.Client(), srv.URL, "test-key", time.Minute)
			_, err := client.Current("USD", "PLN")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","conversion_rates":{"PLN":4.0}}`))
	}))
	defer srv.Close()

	client := NewExchangeRateClient(srv.Client(), srv.URL, "test-key", time.Minute)
	conversion, err := client.Convert("USD", "PLN", dec("10"))
	require.NoError(t, err)
	assert.Equal(t, "40", conversion.ConvertedAmount.String())
	assert.Equal(t, "10", conversion.SourceAmount.String())
}
