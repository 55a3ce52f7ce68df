package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Address     *string         `json:"address,omitempty" gorm:"type:varchar(255)"`
	Description *string         `json:"description,omitempty" gorm:"type:text"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(18,4);not null"`
	Date        time.Time       `json:"date" gorm:"not null"`

	AccountID  uint      `json:"accountId" gorm:"index;not null"`
	Account    *Account  `json:"-" gorm:"foreignKey:AccountID"`
	CategoryID *uint     `json:"categoryId,omitempty"`
	Category   *Category `json:"-" gorm:"foreignKey:CategoryID"`

	// Set only for entries recorded in a currency other than the
	// account's; Amount is then OriginalAmount * ExchangeRate.
	OriginalAmount       *decimal.Decimal `json:"originalAmount,omitempty" gorm:"type:decimal(18,4)"`
	OriginalCurrencyCode *string          `json:"originalCurrencyCode,omitempty" gorm:"type:varchar(8)"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate,omitempty" gorm:"type:decimal(18,8)"`

	OwnerID uint  `json:"ownerId" gorm:"index;not null"`
	Owner   *User `json:"-" gorm:"foreignKey:OwnerID"`
}
