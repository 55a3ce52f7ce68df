package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance-manager/internal/rates"
)

type RatesController struct {
	Exchange *rates.ExchangeRateClient
	Nbp      *rates.NbpClient
}

// Current converts an amount between two currencies at the live rate.
// Amount defaults to 1, so the endpoint doubles as a plain rate lookup.
func (rc RatesController) Current(c *gin.Context) {
	base := strings.ToUpper(c.Query("baseCurrency"))
	target := strings.ToUpper(c.Query("targetCurrency"))
	if base == "" || target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "baseCurrency and targetCurrency must be provided"})
		return
	}
	amount := decimal.NewFromInt(1)
	if raw := c.Query("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid amount"})
			return
		}
		amount = parsed
	}

	conversion, err := rc.Exchange.Convert(base, target, amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, conversion)
}

// Historical converts an amount at the NBP mid rates of a past date.
func (rc RatesController) Historical(c *gin.Context) {
	base := strings.ToUpper(c.Query("baseCurrency"))
	target := strings.ToUpper(c.Query("targetCurrency"))
	if base == "" || target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "baseCurrency and targetCurrency must be provided"})
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "date must be in YYYY-MM-DD format"})
		return
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid amount"})
		return
	}

	conversion, err := rc.Nbp.Historical(date, base, target, amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, conversion)
}

// Gold converts an amount of a currency into grams of gold at the latest
// NBP gold price. Non-PLN amounts cross through the live rate to PLN.
func (rc RatesController) Gold(c *gin.Context) {
	currency := strings.ToUpper(c.Query("currency"))
	if currency == "" {
		currency = "PLN"
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid amount"})
		return
	}

	goldPrice, err := rc.Nbp.GoldPricePerGram()
	if err != nil {
		fail(c, err)
		return
	}

	rateToPLN := decimal.NewFromInt(1)
	if currency != "PLN" {
		current, err := rc.Exchange.Current(currency, "PLN")
		if err != nil {
			fail(c, err)
			return
		}
		rateToPLN = current.Rate
	}

	grams := amount.Mul(rateToPLN).DivRound(goldPrice, 4)
	c.JSON(http.StatusOK, gin.H{
		"source":            "NBP",
		"currency":          currency,
		"amount":            amount,
		"goldPriceInPLN":    goldPrice,
		"currencyRateToPLN": rateToPLN,
		"gramsOfGold":       grams,
		"timestamp":         time.Now().UTC(),
	})
}
