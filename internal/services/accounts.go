package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-manager/models"
)

// AccountService owns account CRUD, the per-account permission grants and
// the cached balance. Transaction writes go through it for access checks
// and balance corrections.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// CreateAccountInput carries the fields a caller may set on a new account.
type CreateAccountInput struct {
	Name          string
	Type          models.AccountType
	CurrencyCode  string
	Balance       decimal.Decimal
	ShowInSummary bool
}

// UpdateAccountInput is a merge patch: nil fields keep their prior value.
type UpdateAccountInput struct {
	Name          *string
	Type          *models.AccountType
	CurrencyCode  *string
	Balance       *decimal.Decimal
	ShowInSummary *bool
}

// ListAccessible returns accounts the user owns plus accounts shared with
// them through a permission grant, without duplicates.
func (s *AccountService) ListAccessible(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.
		Preload("Owner").
		Preload("Permissions").
		Preload("Permissions.User").
		Where("owner_id = ? OR id IN (?)", userID,
			s.db.Model(&models.AccountPermission{}).Select("account_id").Where("user_id = ?", userID)).
		Find(&accounts).Error
	return accounts, err
}

func (s *AccountService) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	err := s.db.
		Preload("Owner").
		Preload("Permissions").
		Preload("Permissions.User").
		First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) Create(in CreateAccountInput, ownerID uint) (*models.Account, error) {
	account := models.Account{
		Name:          in.Name,
		Type:          in.Type,
		CurrencyCode:  in.CurrencyCode,
		Balance:       in.Balance,
		ShowInSummary: in.ShowInSummary,
		OwnerID:       ownerID,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Update applies a merge patch. Allowed for the owner and for users holding
// a ReadAndWrite grant.
func (s *AccountService) Update(id uint, in UpdateAccountInput, userID uint) error {
	var account models.Account
	err := s.db.Preload("Permissions").First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if account.OwnerID != userID && !hasGrant(account.Permissions, userID, models.PermissionReadAndWrite) {
		return ErrAccessDenied
	}

	if in.Name != nil {
		account.Name = *in.Name
	}
	if in.Type != nil {
		account.Type = *in.Type
	}
	if in.CurrencyCode != nil {
		account.CurrencyCode = *in.CurrencyCode
	}
	if in.Balance != nil {
		account.Balance = *in.Balance
	}
	if in.ShowInSummary != nil {
		account.ShowInSummary = *in.ShowInSummary
	}
	return s.db.Save(&account).Error
}

// Delete removes an account together with its grants and transactions.
// Owner only; a ReadAndWrite grant is not enough.
func (s *AccountService) Delete(id, userID uint) error {
	var account models.Account
	err := s.db.First(&account, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if account.OwnerID != userID {
		return ErrAccessDenied
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&models.AccountPermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&account).Error
	})
}

// AddPermission upserts a grant for granteeID on the account: an existing
// grant has its type replaced, otherwise a new one is created. Only the
// owner manages grants; controllers enforce that, the service only checks
// that both sides exist.
func (s *AccountService) AddPermission(accountID, granteeID uint, permType models.PermissionType) error {
	var account models.Account
	if err := s.db.First(&account, accountID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	var user models.User
	if err := s.db.First(&user, granteeID).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	var existing models.AccountPermission
	err := s.db.Where("account_id = ? AND user_id = ?", accountID, granteeID).First(&existing).Error
	if err == nil {
		existing.PermissionType = permType
		return s.db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.db.Create(&models.AccountPermission{
		AccountID:      accountID,
		UserID:         granteeID,
		PermissionType: permType,
	}).Error
}

func (s *AccountService) RemovePermission(accountID, granteeID uint) error {
	res := s.db.Where("account_id = ? AND user_id = ?", accountID, granteeID).
		Delete(&models.AccountPermission{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBalance adds delta to the cached balance. Used by the transaction
// ledger as part of its mutation protocol; pass the enclosing *gorm.DB so
// the correction joins the caller's database transaction.
func (s *AccountService) UpdateBalance(tx *gorm.DB, accountID uint, delta decimal.Decimal) error {
	if tx == nil {
		tx = s.db
	}
	res := tx.Model(&models.Account{}).Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetBalance returns the cached balance, or zero when the account is
// missing. Callers must confirm existence separately before trusting zero.
func (s *AccountService) GetBalance(accountID uint) decimal.Decimal {
	var account models.Account
	s.db.Select("balance").Where("id = ?", accountID).Limit(1).Find(&account)
	return account.Balance
}

// GetCurrencyCode returns the account currency, or "" when missing.
func (s *AccountService) GetCurrencyCode(accountID uint) string {
	var account models.Account
	s.db.Select("currency_code").Where("id = ?", accountID).Limit(1).Find(&account)
	return account.CurrencyCode
}

// HasAccess reports whether the user may read (or, with requireWrite,
// modify) the account. The owner always has full access; a grantee's
// access level is capped by the grant type. A missing account yields false.
func (s *AccountService) HasAccess(accountID, userID uint, requireWrite bool) bool {
	var account models.Account
	if err := s.db.Preload("Permissions").First(&account, accountID).Error; err != nil {
		return false
	}
	if account.OwnerID == userID {
		return true
	}
	for _, p := range account.Permissions {
		if p.UserID != userID {
			continue
		}
		if requireWrite && p.PermissionType == models.PermissionReadOnly {
			return false
		}
		return true
	}
	return false
}

func hasGrant(perms []models.AccountPermission, userID uint, required models.PermissionType) bool {
	for _, p := range perms {
		if p.UserID == userID && p.PermissionType == required {
			return true
		}
	}
	return false
}
