package rates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const goldCacheKey = "nbp:gold"

// NbpClient fetches historical table-A exchange rates and the gold price
// from the Polish central bank API. NBP quotes everything against PLN, so
// historical conversions between two foreign currencies cross through PLN.
type NbpClient struct {
	http    *http.Client
	cache   *cache.Cache
	baseURL string
	goldTTL time.Duration
}

func NewNbpClient(httpClient *http.Client, baseURL string, goldTTL time.Duration) *NbpClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &NbpClient{
		http:    httpClient,
		cache:   cache.New(goldTTL, 2*goldTTL),
		baseURL: baseURL,
		goldTTL: goldTTL,
	}
}

// HistoricalConversion is a past-dated currency conversion.
type HistoricalConversion struct {
	BaseCurrency    string          `json:"baseCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
	SourceAmount    decimal.Decimal `json:"sourceAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	RateDate        time.Time       `json:"rateDate"`
}

// Historical converts amount from base to target at the mid rates published
// for the given date. The result is rounded to 4 decimal places.
func (c *NbpClient) Historical(date time.Time, baseCurrency, targetCurrency string, amount decimal.Decimal) (*HistoricalConversion, error) {
	if baseCurrency == targetCurrency {
		return &HistoricalConversion{
			BaseCurrency:    baseCurrency,
			TargetCurrency:  targetCurrency,
			SourceAmount:    amount,
			ConvertedAmount: amount,
			RateDate:        date,
		}, nil
	}

	baseRate, err := c.midRate(baseCurrency, date)
	if err != nil {
		return nil, err
	}
	targetRate, err := c.midRate(targetCurrency, date)
	if err != nil {
		return nil, err
	}

	plnAmount := amount.Mul(baseRate)
	converted := plnAmount.DivRound(targetRate, 4)

	return &HistoricalConversion{
		BaseCurrency:    baseCurrency,
		TargetCurrency:  targetCurrency,
		SourceAmount:    amount,
		ConvertedAmount: converted,
		RateDate:        date,
	}, nil
}

// midRate returns the PLN mid rate for a currency on a date. PLN itself is 1.
func (c *NbpClient) midRate(currency string, date time.Time) (decimal.Decimal, error) {
	if currency == "PLN" {
		return decimal.NewFromInt(1), nil
	}

	url := fmt.Sprintf("%s/exchangerates/rates/A/%s/%s/?format=json", c.baseURL, currency, date.Format("2006-01-02"))
	resp, err := c.http.Get(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, ErrRateNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		Rates []struct {
			Mid decimal.Decimal `json:"mid"`
		} `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(payload.Rates) == 0 {
		return decimal.Zero, ErrRateNotFound
	}
	return payload.Rates[0].Mid, nil
}

// GoldPricePerGram returns the latest published price of one gram of gold
// in PLN, cached for the configured TTL.
func (c *NbpClient) GoldPricePerGram() (decimal.Decimal, error) {
	if cached, ok := c.cache.Get(goldCacheKey); ok {
		return cached.(decimal.Decimal), nil
	}

	url := c.baseURL + "/cenyzlota?format=json"
	resp, err := c.http.Get(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload []struct {
		Cena decimal.Decimal `json:"cena"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(payload) == 0 {
		return decimal.Zero, ErrRateNotFound
	}

	price := payload[0].Cena
	c.cache.Set(goldCacheKey, price, c.goldTTL)
	return price, nil
}
