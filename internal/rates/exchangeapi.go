// Package rates adapts the external currency providers: ExchangeRate-API
// for live rates and NBP for historical rates and the gold price. All
// lookups are read-only and cached with short TTLs to bound upstream call
// volume.
package rates

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnavailable indicates the upstream provider answered non-2xx or
	// with a malformed payload.
	ErrUnavailable = errors.New("rate provider unavailable")
	// ErrRateNotFound indicates the provider has no rate for the
	// requested currency or date.
	ErrRateNotFound = errors.New("rate not found")
)

// CurrentRate is a live conversion rate between two currencies.
type CurrentRate struct {
	Source         string          `json:"source"`
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Timestamp      time.Time       `json:"timestamp"`
}

// ExchangeRateClient fetches live rates from exchangerate-api.com.
type ExchangeRateClient struct {
	http    *http.Client
	cache   *cache.Cache
	baseURL string
	apiKey  string
	ttl     time.Duration
}

func NewExchangeRateClient(httpClient *http.Client, baseURL, apiKey string, ttl time.Duration) *ExchangeRateClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ExchangeRateClient{
		http:    httpClient,
		cache:   cache.New(ttl, 2*ttl),
		baseURL: baseURL,
		apiKey:  apiKey,
		ttl:     ttl,
	}
}

// Current returns the live base→target rate, served from cache within the
// TTL window.
func (c *ExchangeRateClient) Current(baseCurrency, targetCurrency string) (*CurrentRate, error) {
	cacheKey := fmt.Sprintf("exchange:%s->%s", baseCurrency, targetCurrency)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*CurrentRate), nil
	}

	url := fmt.Sprintf("%s/v6/%s/latest/%s", c.baseURL, c.apiKey, baseCurrency)
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		Result          string                     `json:"result"`
		ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if payload.Result != "success" {
		return nil, ErrUnavailable
	}
	rate, ok := payload.ConversionRates[targetCurrency]
	if !ok {
		return nil, ErrRateNotFound
	}

	result := &CurrentRate{
		Source:         "ExchangeRate-API",
		BaseCurrency:   baseCurrency,
		TargetCurrency: targetCurrency,
		Rate:           rate,
		Timestamp:      time.Now().UTC(),
	}
	c.cache.Set(cacheKey, result, c.ttl)
	return result, nil
}

// Convert applies the live rate to an amount.
func (c *ExchangeRateClient) Convert(baseCurrency, targetCurrency string, amount decimal.Decimal) (*Conversion, error) {
	rate, err := c.Current(baseCurrency, targetCurrency)
	if err != nil {
		return nil, err
	}
	return &Conversion{
		Source:          rate.Source,
		BaseCurrency:    baseCurrency,
		TargetCurrency:  targetCurrency,
		Rate:            rate.Rate,
		SourceAmount:    amount,
		ConvertedAmount: amount.Mul(rate.Rate).Round(4),
		Timestamp:       rate.Timestamp,
	}, nil
}

// Conversion is an amount converted between two currencies at a quoted rate.
type Conversion struct {
	Source          string          `json:"source"`
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	Rate            decimal.Decimal `json:"rate"`
	SourceAmount    decimal.Decimal `json:"sourceAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Timestamp       time.Time       `json:"timestamp"`
}
