package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finance-manager/internal/auth"
	"finance-manager/internal/services"
	"finance-manager/models"
)

type AccountController struct {
	Accounts *services.AccountService
}

type createAccountRequest struct {
	Name          string             `json:"name" binding:"required,min=2"`
	Type          models.AccountType `json:"type"`
	CurrencyCode  string             `json:"currencyCode" binding:"required"`
	Balance       decimal.Decimal    `json:"balance"`
	ShowInSummary bool               `json:"showInSummary"`
}

type updateAccountRequest struct {
	Name          *string             `json:"name"`
	Type          *models.AccountType `json:"type"`
	CurrencyCode  *string             `json:"currencyCode"`
	Balance       *decimal.Decimal    `json:"balance"`
	ShowInSummary *bool               `json:"showInSummary"`
}

type addPermissionRequest struct {
	UserID         uint                  `json:"userId" binding:"required"`
	PermissionType models.PermissionType `json:"permissionType"`
}

func (ac AccountController) List(c *gin.Context) {
	accounts, err := ac.Accounts.ListAccessible(auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (ac AccountController) GetByID(c *gin.Context) {
	id, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	account, err := ac.Accounts.GetByID(id)
	if err != nil {
		fail(c, err)
		return
	}
	if !ac.Accounts.HasAccess(id, auth.UserID(c), false) {
		fail(c, services.ErrAccessDenied)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (ac AccountController) Create(c *gin.Context) {
	var body createAccountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	account, err := ac.Accounts.Create(services.CreateAccountInput{
		Name:          body.Name,
		Type:          body.Type,
		CurrencyCode:  body.CurrencyCode,
		Balance:       body.Balance,
		ShowInSummary: body.ShowInSummary,
	}, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (ac AccountController) Update(c *gin.Context) {
	id, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	var body updateAccountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	err := ac.Accounts.Update(id, services.UpdateAccountInput{
		Name:          body.Name,
		Type:          body.Type,
		CurrencyCode:  body.CurrencyCode,
		Balance:       body.Balance,
		ShowInSummary: body.ShowInSummary,
	}, auth.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac AccountController) Delete(c *gin.Context) {
	id, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	if err := ac.Accounts.Delete(id, auth.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddPermission grants or replaces another user's access to the account.
// Owner only.
func (ac AccountController) AddPermission(c *gin.Context) {
	id, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	var body addPermissionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	if ok, err := ac.requireOwner(c, id); !ok {
		if err != nil {
			fail(c, err)
		}
		return
	}
	if err := ac.Accounts.AddPermission(id, body.UserID, body.PermissionType); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac AccountController) RemovePermission(c *gin.Context) {
	id, ok := paramID(c, "accountId")
	if !ok {
		return
	}
	granteeID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	if ok, err := ac.requireOwner(c, id); !ok {
		if err != nil {
			fail(c, err)
		}
		return
	}
	if err := ac.Accounts.RemovePermission(id, granteeID); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ac AccountController) requireOwner(c *gin.Context, accountID uint) (bool, error) {
	account, err := ac.Accounts.GetByID(accountID)
	if err != nil {
		return false, err
	}
	if account.OwnerID != auth.UserID(c) {
		return false, services.ErrAccessDenied
	}
	return true, nil
}
