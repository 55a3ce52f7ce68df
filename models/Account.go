package models

import "github.com/shopspring/decimal"

type AccountType int16

const (
	AccountCash AccountType = iota
	AccountBank
	AccountCreditCard
	AccountSavings
	AccountInvestment
	AccountOther
)

type Account struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	Type          AccountType     `json:"type" gorm:"type:smallint;not null"`
	CurrencyCode  string          `json:"currencyCode" gorm:"type:varchar(8);not null"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(18,4);not null"`
	ShowInSummary bool            `json:"showInSummary"`
	OwnerID       uint            `json:"ownerId" gorm:"index;not null"`
	Owner         *User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	Permissions  []AccountPermission `json:"permissions,omitempty" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Transactions []Transaction       `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}
