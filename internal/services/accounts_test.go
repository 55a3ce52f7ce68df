package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-manager/models"
)

func TestHasAccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	reader := newTestUser(t, db, "reader")
	writer := newTestUser(t, db, "writer")
	stranger := newTestUser(t, db, "stranger")
	account := newTestAccount(t, db, owner.ID, "PLN")

	require.NoError(t, svc.AddPermission(account.ID, reader.ID, models.PermissionReadOnly))
	require.NoError(t, svc.AddPermission(account.ID, writer.ID, models.PermissionReadAndWrite))

	tests := []struct {
		name         string
		userID       uint
		requireWrite bool
		want         bool
	}{
		{"owner read", owner.ID, false, true},
		{"owner write", owner.ID, true, true},
		{"readonly grantee read", reader.ID, false, true},
		{"readonly grantee write", reader.ID, true, false},
		{"readwrite grantee read", writer.ID, false, true},
		{"readwrite grantee write", writer.ID, true, true},
		{"stranger read", stranger.ID, false, false},
		{"stranger write", stranger.ID, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.HasAccess(account.ID, tt.userID, tt.requireWrite))
		})
	}

	assert.False(t, svc.HasAccess(9999, owner.ID, false), "missing account")
}

func TestListAccessible(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	grantee := newTestUser(t, db, "grantee")

	owned := newTestAccount(t, db, owner.ID, "PLN")
	shared := newTestAccount(t, db, grantee.ID, "EUR")
	newTestAccount(t, db, grantee.ID, "USD") // not shared with owner

	require.NoError(t, svc.AddPermission(shared.ID, owner.ID, models.PermissionReadOnly))

	accounts, err := svc.ListAccessible(owner.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	ids := []uint{accounts[0].ID, accounts[1].ID}
	assert.Contains(t, ids, owned.ID)
	assert.Contains(t, ids, shared.ID)
}

func TestUpdateAccountPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	reader := newTestUser(t, db, "reader")
	writer := newTestUser(t, db, "writer")
	account := newTestAccount(t, db, owner.ID, "PLN")

	require.NoError(t, svc.AddPermission(account.ID, reader.ID, models.PermissionReadOnly))
	require.NoError(t, svc.AddPermission(account.ID, writer.ID, models.PermissionReadAndWrite))

	name := "renamed"

	err := svc.Update(account.ID, UpdateAccountInput{Name: &name}, reader.ID)
	assert.ErrorIs(t, err, ErrAccessDenied, "readonly grantee cannot update")

	require.NoError(t, svc.Update(account.ID, UpdateAccountInput{Name: &name}, writer.ID))

	updated, err := svc.GetByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, "PLN", updated.CurrencyCode, "unset patch fields keep prior values")

	err = svc.Update(9999, UpdateAccountInput{Name: &name}, owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAccountOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	writer := newTestUser(t, db, "writer")
	account := newTestAccount(t, db, owner.ID, "PLN")
	require.NoError(t, svc.AddPermission(account.ID, writer.ID, models.PermissionReadAndWrite))

	err := svc.Delete(account.ID, writer.ID)
	assert.ErrorIs(t, err, ErrAccessDenied, "even a ReadAndWrite grantee cannot delete")

	require.NoError(t, svc.Delete(account.ID, owner.ID))
	_, err = svc.GetByID(account.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	grantee := newTestUser(t, db, "grantee")
	account := newTestAccount(t, db, owner.ID, "PLN")
	require.NoError(t, svc.AddPermission(account.ID, grantee.ID, models.PermissionReadOnly))

	txs := NewTransactionService(db, svc)
	_, err := txs.Create(account.ID, CreateTransactionInput{Name: "groceries", Amount: dec("25")}, owner.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(account.ID, owner.ID))

	var permCount, txCount int64
	db.Model(&models.AccountPermission{}).Where("account_id = ?", account.ID).Count(&permCount)
	db.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&txCount)
	assert.Zero(t, permCount)
	assert.Zero(t, txCount)
}

func TestAddPermissionUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	grantee := newTestUser(t, db, "grantee")
	account := newTestAccount(t, db, owner.ID, "PLN")

	require.NoError(t, svc.AddPermission(account.ID, grantee.ID, models.PermissionReadOnly))
	require.NoError(t, svc.AddPermission(account.ID, grantee.ID, models.PermissionReadAndWrite))

	var perms []models.AccountPermission
	require.NoError(t, db.Where("account_id = ?", account.ID).Find(&perms).Error)
	require.Len(t, perms, 1, "upsert must not create a second grant")
	assert.Equal(t, models.PermissionReadAndWrite, perms[0].PermissionType)

	assert.ErrorIs(t, svc.AddPermission(9999, grantee.ID, models.PermissionReadOnly), ErrNotFound)
	assert.ErrorIs(t, svc.AddPermission(account.ID, 9999, models.PermissionReadOnly), ErrNotFound)
}

func TestRemovePermission(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	grantee := newTestUser(t, db, "grantee")
	account := newTestAccount(t, db, owner.ID, "PLN")

	require.NoError(t, svc.AddPermission(account.ID, grantee.ID, models.PermissionReadOnly))
	require.NoError(t, svc.RemovePermission(account.ID, grantee.ID))
	assert.False(t, svc.HasAccess(account.ID, grantee.ID, false))

	err := svc.RemovePermission(account.ID, grantee.ID)
	assert.ErrorIs(t, err, ErrNotFound, "removing a non-existent grant fails without side effects")
}

func TestBalanceAccessors(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	owner := newTestUser(t, db, "owner")
	account := newTestAccount(t, db, owner.ID, "EUR")

	require.NoError(t, svc.UpdateBalance(nil, account.ID, dec("12.50")))
	assert.True(t, svc.GetBalance(account.ID).Equal(dec("12.50")))
	assert.Equal(t, "EUR", svc.GetCurrencyCode(account.ID))

	assert.ErrorIs(t, svc.UpdateBalance(nil, 9999, dec("1")), ErrNotFound)
	assert.True(t, svc.GetBalance(9999).Equal(decimal.Zero), "missing account reads as zero")
	assert.Equal(t, "", svc.GetCurrencyCode(9999))
}
