package rates

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func nbpTestServer(t *testing.T, mids map[string]string, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		for currency, mid := range mids {
			if r.URL.Path == "/exchangerates/rates/A/"+currency+"/2024-03-15/" {
				fmt.Fprintf(w, `{"rates":[{"mid":%s}]}`, mid)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	}))
}

func TestHistoricalCrossesThroughPLN(t *testing.T) {
	srv := nbpTestServer(t, map[string]string{"USD": "4.0", "EUR": "4.3"}, nil)
	defer srv.Close()

	client := NewNbpClient(srv.Client(), srv.URL, time.Hour)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	conversion, err := client.Historical(date, "USD", "EUR", dec("100"))
	require.NoError(t, err)
	// 100 USD -> 400 PLN -> 400/4.3 EUR
	assert.Equal(t, "93.0233", conversion.ConvertedAmount.String())
}

func TestHistoricalPLNLegs(t *testing.T) {
	srv := nbpTestServer(t, map[string]string{"USD": "4.0"}, nil)
	defer srv.Close()

	client := NewNbpClient(srv.Client(), srv.URL, time.Hour)
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	toPLN, err := client.Historical(date, "USD", "PLN", dec("10"))
	require.NoError(t, err)
	assert.Equal(t, "40", toPLN.ConvertedAmount.String())

	fromPLN, err := client.Historical(date, "PLN", "USD", dec("40"))
	require.NoError(t, err)
	assert.Equal(t, "10", fromPLN.ConvertedAmount.String())
}

func TestHistoricalSameCurrencyShortCircuits(t *testing.T) {
	calls := 0
	srv := nbpTestServer(t, nil, &calls)
	defer srv.Close()

	client := NewNbpClient(srv.Client(), srv.URL, time.Hour)
	conversion, err := client.Historical(time.Now(), "EUR", "EUR", dec("12.34"))
	require.NoError(t, err)
	assert.Equal(t, "12.34", conversion.ConvertedAmount.String())
	assert.Zero(t, calls, "no upstream call when currencies match")
}

func TestHistoricalUnknownDate(t *testing.T) {
	srv := nbpTestServer(t, map[string]string{}, nil)
	defer srv.Close()

	client := NewNbpClient(srv.Client(), srv.URL, time.Hour)
	_, err := client.Historical(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), "USD", "PLN", dec("10"))
	assert.ErrorIs(t, err, ErrRateNotFound)
}

func TestGoldPriceCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/cenyzlota", r.URL.Path)
		w.Write([]byte(`[{"data":"2024-03-15","cena":270.55}]`))
	}))
	defer srv.Close()

	client := NewNbpClient(srv.Client(), srv.URL, time.Hour)

	price, err := client.GoldPricePerGram()
	require.NoError(t, err)
	assert.Equal(t, "270.55", price.String())

	_, err = client.GoldPricePerGram()
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second read served from cache")
}

func TestGoldPriceUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewNbpClient(srv.Client(), srv.URL, time.Hour)
	_, err := client.GoldPricePerGram()
	assert.ErrorIs(t, err, ErrUnavailable)
}
