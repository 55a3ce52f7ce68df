package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance-manager/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.AccountPermission{},
		&models.Category{},
		&models.Transaction{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()
	user := models.User{
		Login:           login,
		Email:           login + "@example.com",
		PasswordHash:    "x",
		DefaultCurrency: "PLN",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func newTestAccount(t *testing.T, db *gorm.DB, ownerID uint, currency string) *models.Account {
	t.Helper()
	account := models.Account{
		Name:         "test account",
		Type:         models.AccountBank,
		CurrencyCode: currency,
		Balance:      decimal.Zero,
		OwnerID:      ownerID,
	}
	require.NoError(t, db.Create(&account).Error)
	return &account
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
