package models

import "time"

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Login           string    `json:"login" gorm:"type:varchar(64);uniqueIndex;not null"`
	Email           string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash    string    `json:"-" gorm:"type:varchar(255);not null"`
	DefaultCurrency string    `json:"defaultCurrency" gorm:"type:varchar(8);default:'PLN'"`
	CreatedAt       time.Time `json:"createdAt"`

	OwnedAccounts      []Account           `json:"-" gorm:"foreignKey:OwnerID"`
	AccountPermissions []AccountPermission `json:"-" gorm:"foreignKey:UserID"`
	OwnedCategories    []Category          `json:"-" gorm:"foreignKey:OwnerID"`
	OwnedTransactions  []Transaction       `json:"-" gorm:"foreignKey:OwnerID"`
}
