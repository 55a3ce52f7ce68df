package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance-manager/internal/auth"
	"finance-manager/internal/services"
)

type TransactionController struct {
	Transactions *services.TransactionService
	Accounts     *services.AccountService
}

type createTransactionRequest struct {
	Name        string          `json:"name" binding:"required,min=2"`
	Address     *string         `json:"address"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date"`
	CategoryID  *uint           `json:"categoryId"`

	OriginalAmount       *decimal.Decimal `json:"originalAmount"`
	OriginalCurrencyCode *string          `json:"originalCurrencyCode"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate"`
}

type updateTransactionRequest struct {
	Name        *string          `json:"name"`
	Address     *string          `json:"address"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *time.Time       `json:"date"`
	CategoryID  *uint            `json:"categoryId"`

	OriginalAmount       *decimal.Decimal `json:"originalAmount"`
	OriginalCurrencyCode *string          `json:"originalCurrencyCode"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate"`
}

func (tc TransactionController) List(c *gin.Context) {
	accountID, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	views, err := tc.Transactions.ListByAccount(accountID, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (tc TransactionController) GetByID(c *gin.Context) {
	accountID, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	transactionID, ok := paramID(c, "transactionId")
	if !ok {
		return
	}
	view, err := tc.Transactions.GetByID(transactionID, accountID)
	if err != nil {
		fail(c, err)
		return
	}
	if view.OwnerID != auth.UserID(c) {
		fail(c, services.ErrAccessDenied)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (tc TransactionController) Create(c *gin.Context) {
	accountID, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	var body createTransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	tx, err := tc.Transactions.Create(accountID, services.CreateTransactionInput{
		Name:                 body.Name,
		Address:              body.Address,
		Description:          body.Description,
		Amount:               body.Amount,
		Date:                 body.Date,
		CategoryID:           body.CategoryID,
		OriginalAmount:       body.OriginalAmount,
		OriginalCurrencyCode: body.OriginalCurrencyCode,
		ExchangeRate:         body.ExchangeRate,
	}, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (tc TransactionController) Update(c *gin.Context) {
	accountID, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	transactionID, ok := paramID(c, "transactionId")
	if !ok {
		return
	}
	var body updateTransactionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	_, err := tc.Transactions.Update(transactionID, accountID, services.UpdateTransactionInput{
		Name:                 body.Name,
		Address:              body.Address,
		Description:          body.Description,
		Amount:               body.Amount,
		Date:                 body.Date,
		CategoryID:           body.CategoryID,
		OriginalAmount:       body.OriginalAmount,
		OriginalCurrencyCode: body.OriginalCurrencyCode,
		ExchangeRate:         body.ExchangeRate,
	}, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (tc TransactionController) Delete(c *gin.Context) {
	accountID, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	transactionID, ok := paramID(c, "transactionId")
	if !ok {
		return
	}
	if err := tc.Transactions.Delete(transactionID, accountID, auth.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
