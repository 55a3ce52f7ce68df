package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-manager/models"
)

// TransactionService records money movement against accounts and keeps the
// cached account balance in step with the ledger. Every mutation runs in a
// single database transaction so the row change and the balance correction
// commit or roll back together.
type TransactionService struct {
	db       *gorm.DB
	accounts *AccountService
}

func NewTransactionService(db *gorm.DB, accounts *AccountService) *TransactionService {
	return &TransactionService{db: db, accounts: accounts}
}

type CreateTransactionInput struct {
	Name        string
	Address     *string
	Description *string
	// Amount in the account's currency; ignored when the cross-currency
	// fields apply.
	Amount     decimal.Decimal
	Date       *time.Time
	CategoryID *uint

	OriginalAmount       *decimal.Decimal
	OriginalCurrencyCode *string
	ExchangeRate         *decimal.Decimal
}

type UpdateTransactionInput struct {
	Name        *string
	Address     *string
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	CategoryID  *uint

	OriginalAmount       *decimal.Decimal
	OriginalCurrencyCode *string
	ExchangeRate         *decimal.Decimal
}

// TransactionView is the enriched read projection joining account, category
// and owner identity fields. Presentational only.
type TransactionView struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Address     *string         `json:"address,omitempty"`
	Description *string         `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`

	AccountID           uint               `json:"accountId"`
	AccountName         string             `json:"accountName"`
	AccountCurrencyCode string             `json:"accountCurrencyCode"`
	AccountType         models.AccountType `json:"accountType"`

	CategoryID    *uint   `json:"categoryId,omitempty"`
	CategoryName  *string `json:"categoryName,omitempty"`
	CategoryColor *string `json:"categoryColor,omitempty"`

	OriginalAmount       *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrencyCode *string          `json:"originalCurrencyCode,omitempty"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate,omitempty"`

	OwnerID    uint   `json:"ownerId"`
	OwnerLogin string `json:"ownerLogin"`
}

// ListByAccount returns the caller's transactions on the account. Requires
// read access.
func (s *TransactionService) ListByAccount(accountID, userID uint) ([]TransactionView, error) {
	if !s.accounts.HasAccess(accountID, userID, false) {
		return nil, ErrAccessDenied
	}

	var txs []models.Transaction
	err := s.db.
		Preload("Account").
		Preload("Category").
		Preload("Owner").
		Where("account_id = ? AND owner_id = ?", accountID, userID).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(txs))
	for i := range txs {
		views = append(views, project(&txs[i]))
	}
	return views, nil
}

func (s *TransactionService) GetByID(transactionID, accountID uint) (*TransactionView, error) {
	var tx models.Transaction
	err := s.db.
		Preload("Account").
		Preload("Category").
		Preload("Owner").
		Where("id = ? AND account_id = ?", transactionID, accountID).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	view := project(&tx)
	return &view, nil
}

// Create records a transaction and credits its amount to the account
// balance. The caller needs write access to the account. Cross-currency
// entries must carry an original amount and a positive exchange rate; the
// stored amount is their product.
func (s *TransactionService) Create(accountID uint, in CreateTransactionInput, ownerID uint) (*models.Transaction, error) {
	if !s.accounts.HasAccess(accountID, ownerID, true) {
		return nil, ErrAccessDenied
	}

	currency := s.accounts.GetCurrencyCode(accountID)
	if currency == "" {
		return nil, fmt.Errorf("account currency could not be determined: %w", ErrValidation)
	}

	tx := models.Transaction{
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		Date:        time.Now().UTC(),
		AccountID:   accountID,
		CategoryID:  in.CategoryID,
		OwnerID:     ownerID,
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}

	if in.OriginalCurrencyCode != nil && *in.OriginalCurrencyCode != "" && *in.OriginalCurrencyCode != currency {
		if in.OriginalAmount == nil || in.ExchangeRate == nil || !in.ExchangeRate.IsPositive() {
			return nil, fmt.Errorf("original amount and exchange rate are required for cross-currency transactions: %w", ErrValidation)
		}
		tx.OriginalAmount = in.OriginalAmount
		tx.OriginalCurrencyCode = in.OriginalCurrencyCode
		tx.ExchangeRate = in.ExchangeRate
		tx.Amount = in.OriginalAmount.Mul(*in.ExchangeRate)
	} else {
		tx.Amount = in.Amount
	}

	err := s.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(&tx).Error; err != nil {
			return err
		}
		if err := s.accounts.UpdateBalance(dbtx, tx.AccountID, tx.Amount); err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Update applies a merge patch to the caller's own transaction and corrects
// the account balance by the amount delta. Account reassignment is not
// supported: the transaction stays on the account it was recorded against.
func (s *TransactionService) Update(transactionID, accountID uint, in UpdateTransactionInput, userID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.First(&tx, transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if tx.AccountID != accountID {
		return nil, ErrNotFound
	}
	if tx.OwnerID != userID {
		return nil, ErrAccessDenied
	}
	if !s.accounts.HasAccess(accountID, userID, true) {
		return nil, ErrAccessDenied
	}

	oldAmount := tx.Amount

	if in.Name != nil {
		tx.Name = *in.Name
	}
	if in.Address != nil {
		tx.Address = in.Address
	}
	if in.Description != nil {
		tx.Description = in.Description
	}
	if in.Date != nil {
		tx.Date = *in.Date
	}
	if in.CategoryID != nil {
		tx.CategoryID = in.CategoryID
	}

	currency := s.accounts.GetCurrencyCode(tx.AccountID)

	switch {
	case in.OriginalCurrencyCode != nil && *in.OriginalCurrencyCode != currency:
		if in.OriginalAmount == nil || in.ExchangeRate == nil || !in.ExchangeRate.IsPositive() {
			return nil, fmt.Errorf("original amount and exchange rate are required when changing to a cross-currency transaction: %w", ErrValidation)
		}
		tx.OriginalAmount = in.OriginalAmount
		tx.OriginalCurrencyCode = in.OriginalCurrencyCode
		tx.ExchangeRate = in.ExchangeRate
		tx.Amount = in.OriginalAmount.Mul(*in.ExchangeRate)
	case in.Amount != nil:
		// Plain amount in the account currency clears the
		// cross-currency triple.
		tx.Amount = *in.Amount
		tx.OriginalAmount = nil
		tx.OriginalCurrencyCode = nil
		tx.ExchangeRate = nil
	}

	err = s.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Save(&tx).Error; err != nil {
			return err
		}
		if err := s.accounts.UpdateBalance(dbtx, tx.AccountID, oldAmount.Neg()); err != nil {
			return err
		}
		return s.accounts.UpdateBalance(dbtx, tx.AccountID, tx.Amount)
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// Delete removes the caller's own transaction and debits its amount from
// the account balance.
func (s *TransactionService) Delete(transactionID, accountID, userID uint) error {
	var tx models.Transaction
	err := s.db.First(&tx, transactionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if tx.AccountID != accountID {
		return ErrNotFound
	}
	if tx.OwnerID != userID {
		return ErrAccessDenied
	}
	if !s.accounts.HasAccess(accountID, userID, true) {
		return ErrAccessDenied
	}

	return s.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Delete(&tx).Error; err != nil {
			return err
		}
		return s.accounts.UpdateBalance(dbtx, tx.AccountID, tx.Amount.Neg())
	})
}

func project(tx *models.Transaction) TransactionView {
	view := TransactionView{
		ID:                   tx.ID,
		Name:                 tx.Name,
		Address:              tx.Address,
		Description:          tx.Description,
		Amount:               tx.Amount,
		Date:                 tx.Date,
		AccountID:            tx.AccountID,
		CategoryID:           tx.CategoryID,
		OriginalAmount:       tx.OriginalAmount,
		OriginalCurrencyCode: tx.OriginalCurrencyCode,
		ExchangeRate:         tx.ExchangeRate,
		OwnerID:              tx.OwnerID,
	}
	if tx.Account != nil {
		view.AccountName = tx.Account.Name
		view.AccountCurrencyCode = tx.Account.CurrencyCode
		view.AccountType = tx.Account.Type
	}
	if tx.Category != nil {
		view.CategoryName = &tx.Category.Name
		view.CategoryColor = &tx.Category.Color
	}
	if tx.Owner != nil {
		view.OwnerLogin = tx.Owner.Login
	}
	return view
}
